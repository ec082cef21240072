package loader_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/okian/yogicgames/internal/adapters/loader"
	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const attrsYAML = `
    attributes:
      sattva: 3
      vairagya: 3
      viveka: 2
      ekagrata: 5
      santosha: 2
      frustrationTolerance: 4
      impulseControl: 3
      egoConfrontation: 2
      sanga: 1
      rajas: 3
      tamas: 1
      addictionPotential: 3
      timeWasting: 3
      dissociation: 2
      samskaraFormation: 2
      ahimsaViolation: 0
      pratyaharaDisturbance: 2
      sankalpaUndermining: 2`

func entry(rank int, title, extra string) string {
	return "  - rank: " + strconv.Itoa(rank) + "\n    title: " + title + "\n    tier: B - Neutral\n    platform: PC" + extra + attrsYAML + "\n"
}

func TestFormatFromPath(t *testing.T) {
	Convey("Given catalog file names", t, func() {
		for path, want := range map[string]loader.Format{
			"games.yaml": loader.FormatYAML, "games.YML": loader.FormatYAML, "games.json": loader.FormatJSON,
		} {
			got, err := loader.FormatFromPath(path)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		_, err := loader.FormatFromPath("games.csv")
		So(errors.Is(err, loader.ErrUnsupportedFormat), ShouldBeTrue)
	})
}

func TestDecodeYAML(t *testing.T) {
	ctx := context.Background()

	Convey("Given a YAML document with two games", t, func() {
		doc := "games:\n" +
			entry(1, "Tetris", "\n    id: tetris-1\n    yogicScore: 8\n    steamAppId: \"1003590\"\n    userRatings:\n      - {id: c1, user: asha, rating: 4, text: calm, date: \"2024-05-01\"}") +
			entry(2, "Stardew Valley", "")

		Convey("When decoding", func() {
			games, err := loader.New().Decode(ctx, []byte(doc), loader.FormatYAML)

			Convey("Then games are built in source order with derived scores", func() {
				So(err, ShouldBeNil)
				So(games, ShouldHaveLength, 2)
				So(games[0].ID, ShouldEqual, "tetris-1")
				So(games[0].Score, ShouldEqual, 8.0)
				So(games[0].SteamAppID, ShouldEqual, "1003590")
				So(games[0].Comments, ShouldResemble, []model.Comment{{ID: "c1", User: "asha", Rating: 4, Text: "calm", Date: "2024-05-01"}})
				So(games[1].Attributes.Ekagrata, ShouldEqual, 5.0)
			})

			Convey("Then missing ids are derived from the slug", func() {
				So(games[1].ID, ShouldEqual, loader.DeriveID("Stardew Valley"))
				So(loader.DeriveID("stardew  valley!"), ShouldEqual, games[1].ID)
			})
		})
	})

	Convey("Given a bare YAML list", t, func() {
		games, err := loader.New().Decode(ctx, []byte(entry(1, "Tetris", "")), loader.FormatYAML)
		So(err, ShouldBeNil)
		So(games, ShouldHaveLength, 1)
	})

	Convey("Given an empty file", t, func() {
		games, err := loader.New().Decode(ctx, nil, loader.FormatYAML)
		So(err, ShouldBeNil)
		So(games, ShouldBeEmpty)
	})
}

func TestDecodeErrors(t *testing.T) {
	ctx := context.Background()

	Convey("Given malformed catalogs", t, func() {
		l := loader.New()

		Convey("When a title is missing", func() {
			_, err := l.Decode(ctx, []byte(entry(1, `""`, "")), loader.FormatYAML)
			So(errors.Is(err, loader.ErrInvalidGame), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "title is required")
		})

		Convey("When a dimension is missing", func() {
			doc := strings.Replace(entry(1, "Tetris", ""), "      sanga: 1\n", "", 1)
			_, err := l.Decode(ctx, []byte(doc), loader.FormatYAML)
			So(errors.Is(err, loader.ErrInvalidGame), ShouldBeTrue)
			So(errors.Is(err, attribute.ErrMissingDimension), ShouldBeTrue)
		})

		Convey("When a rating is out of range", func() {
			doc := strings.Replace(entry(1, "Tetris", ""), "ekagrata: 5", "ekagrata: 7", 1)
			_, err := l.Decode(ctx, []byte(doc), loader.FormatYAML)
			So(errors.Is(err, attribute.ErrRatingOutOfRange), ShouldBeTrue)
		})

		Convey("When two games share a slug", func() {
			_, err := l.Decode(ctx, []byte(entry(1, "Tetris", "")+entry(2, "TETRIS!", "")), loader.FormatYAML)
			So(errors.Is(err, loader.ErrDuplicate), ShouldBeTrue)
		})

		Convey("When two games share an id", func() {
			doc := entry(1, "Tetris", "\n    id: same") + entry(2, "Doom", "\n    id: same")
			_, err := l.Decode(ctx, []byte(doc), loader.FormatYAML)
			So(errors.Is(err, loader.ErrDuplicate), ShouldBeTrue)
		})

		Convey("When the YAML is broken", func() {
			_, err := l.Decode(ctx, []byte("games: [\n"), loader.FormatYAML)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestStrictMode(t *testing.T) {
	ctx := context.Background()

	Convey("Given a catalog with a wrong stored score and a rank gap", t, func() {
		doc := entry(1, "Tetris", "\n    yogicScore: 99") + entry(3, "Doom", "")

		Convey("When loading leniently", func() {
			games, err := loader.New().Decode(ctx, []byte(doc), loader.FormatYAML)

			Convey("Then the derived score wins and loading succeeds", func() {
				So(err, ShouldBeNil)
				So(games[0].Score, ShouldEqual, 8.0)
			})
		})

		Convey("When loading strictly", func() {
			_, err := loader.New(loader.WithStrict(true)).Decode(ctx, []byte(doc), loader.FormatYAML)
			So(errors.Is(err, loader.ErrScoreMismatch), ShouldBeTrue)
		})

		Convey("When only the rank gap remains in strict mode", func() {
			fixed := strings.Replace(doc, "yogicScore: 99", "yogicScore: 8", 1)
			_, err := loader.New(loader.WithStrict(true)).Decode(ctx, []byte(fixed), loader.FormatYAML)
			So(errors.Is(err, loader.ErrRankSequence), ShouldBeTrue)
		})
	})
}

func TestEncodeAndFiles(t *testing.T) {
	ctx := context.Background()

	Convey("Given loaded games", t, func() {
		games, err := loader.New().Decode(ctx, []byte(entry(1, "Tetris", "")+entry(2, "Doom", "")), loader.FormatYAML)
		So(err, ShouldBeNil)

		Convey("When written as JSON and read back", func() {
			var buf bytes.Buffer
			So(loader.Encode(&buf, games, loader.FormatJSON), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, `"yogicScore": 8`)

			back, err := loader.New(loader.WithStrict(true)).Load(ctx, &buf, loader.FormatJSON)

			Convey("Then the games are unchanged", func() {
				So(err, ShouldBeNil)
				So(back, ShouldResemble, games)
			})
		})

		Convey("When written to a YAML file and loaded", func() {
			path := filepath.Join(t.TempDir(), "catalog.yml")
			So(loader.WriteFile(path, games), ShouldBeNil)

			back, err := loader.New().LoadFile(ctx, path)
			So(err, ShouldBeNil)
			So(back, ShouldResemble, games)
		})

		Convey("When the file does not exist", func() {
			_, err := loader.New().LoadFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})

		Convey("When a bare JSON list is loaded", func() {
			var buf bytes.Buffer
			So(loader.Encode(&buf, games, loader.FormatJSON), ShouldBeNil)
			doc := buf.String()
			list := doc[strings.Index(doc, "[") : strings.LastIndex(doc, "]")+1]

			back, err := loader.New().Decode(ctx, []byte(list), loader.FormatJSON)
			So(err, ShouldBeNil)
			So(back, ShouldHaveLength, 2)
		})
	})
}

func TestBundledCatalog(t *testing.T) {
	Convey("Given the sample catalog shipped with the service", t, func() {
		l := loader.New(loader.WithStrict(true))

		Convey("When loading it in strict mode", func() {
			games, err := l.LoadFile(context.Background(), filepath.Join("..", "..", "..", "data", "catalog.yaml"))

			Convey("Then every stored score and rank checks out", func() {
				So(err, ShouldBeNil)
				So(games, ShouldHaveLength, 10)
				So(games[0].Title, ShouldEqual, "Minecraft")
				So(games[0].Score, ShouldEqual, 11.5)
				So(games[4].SteamAppID, ShouldEqual, "413150")
				So(games[4].Comments, ShouldHaveLength, 2)
			})
		})
	})
}
