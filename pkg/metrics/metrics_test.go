package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "yogic")
				So(manager.subsystem, ShouldEqual, "catalog")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithConstLabels(map[string]string{"env": "test"}),
				WithRegistry(registry),
			)
			manager.UpdateCatalogGames(3)

			Convey("Then metric names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "test_catalog_games" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithConstLabels(nil),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "yogic")
				So(manager.constLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		m := NewManager(WithRegistry(prometheus.NewRegistry()))

		Convey("When recording catalog loads", func() {
			m.RecordCatalogLoad(12)
			m.RecordCatalogLoad(3)
			m.RecordCatalogLoadFailure()
			m.UpdateCatalogGames(42)

			Convey("Then counters and gauges reflect them", func() {
				So(testutil.ToFloat64(m.catalogLoads), ShouldEqual, 2)
				So(testutil.ToFloat64(m.catalogLoadFailures), ShouldEqual, 1)
				So(testutil.ToFloat64(m.catalogGames), ShouldEqual, 42)
			})
		})

		Convey("When publishing a snapshot", func() {
			at := time.Unix(1700000000, 0)
			m.RecordSnapshotPublished(7, at)

			Convey("Then version and timestamp are exported", func() {
				So(testutil.ToFloat64(m.snapshotVersion), ShouldEqual, 7)
				So(testutil.ToFloat64(m.snapshotLastUnix), ShouldEqual, 1700000000)
				So(testutil.ToFloat64(m.snapshotPublishes), ShouldEqual, 1)
			})
		})

		Convey("When recording view activity", func() {
			m.RecordViewQuery("list", 0.2)
			m.RecordViewCacheHit("list")
			m.RecordViewCacheHit("list")
			m.RecordViewCacheMiss("trend")
			m.UpdateViewCacheItems(4)

			Convey("Then per-view counters are labelled", func() {
				So(testutil.ToFloat64(m.viewQueries.WithLabelValues("list")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.viewCacheHits.WithLabelValues("list")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.viewCacheMisses.WithLabelValues("trend")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.viewCacheItems), ShouldEqual, 4)
			})
		})

		Convey("When recording HTTP and error activity", func() {
			m.RecordHTTPRequest("games", "GET", "200", 1.5)
			m.RecordErrorByEndpoint("games", "GET", "not_found")
			m.RecordErrorByComponent("repository", "not_found")

			Convey("Then the labelled series exist", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("games", "GET", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("games", "GET", "not_found")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByComponent.WithLabelValues("repository", "not_found")), ShouldEqual, 1)
			})
		})

		Convey("When recording system metrics", func() {
			m.UpdateSystemMemoryUsage(1024)
			m.UpdateSystemGoroutineCount(12)
			m.RecordSystemGCPauseTime(0.3)

			Convey("Then gauges hold the latest values", func() {
				So(testutil.ToFloat64(m.systemMemoryUsage), ShouldEqual, 1024)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 12)
			})
		})
	})
}

func TestGlobalFunctions(t *testing.T) {
	// The global manager is built once per process; configure it before the
	// first recording below.
	first := Configure(WithConstLabels(map[string]string{"deployment": "test"}))
	second := Configure(WithNamespace("other"))

	Convey("Given the global manager", t, func() {
		Convey("Then only the first Configure applies", func() {
			So(first, ShouldBeNil)
			So(errors.Is(second, ErrConfigured), ShouldBeTrue)
		})

		Convey("Then the convenience functions do not panic", func() {
			So(func() {
				UpdateCatalogGames(1)
				RecordCatalogLoad(1)
				RecordCatalogLoadFailure()
				RecordSnapshotPublished(1, time.Now())
				RecordViewQuery("list", 0.1)
				RecordViewCacheHit("list")
				RecordViewCacheMiss("list")
				UpdateViewCacheItems(1)
				RecordHTTPRequest("stats", "GET", "200", 0.5)
				RecordErrorByComponent("api", "bad_request")
				RecordErrorByEndpoint("stats", "GET", "bad_request")
				UpdateSystemMemoryUsage(1)
				UpdateSystemGoroutineCount(1)
				RecordSystemGCPauseTime(0.1)
			}, ShouldNotPanic)
		})

		Convey("Then the registry exposes the catalog metrics with the configured labels", func() {
			UpdateCatalogGames(7)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			var found bool
			for _, f := range families {
				if f.GetName() == "yogic_catalog_games" {
					found = true
					So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "deployment")
					So(f.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 7)
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
