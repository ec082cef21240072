package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	repository "github.com/okian/yogicgames/internal/adapters/repository"
	service "github.com/okian/yogicgames/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAPIError(t *testing.T) {
	Convey("Given API errors", t, func() {
		cause := errors.New("boom")

		Convey("Then kind and cause are both matchable", func() {
			err := WrapKind("api.op", ErrBadRequest, cause)
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: boom")
		})

		Convey("Then NewKind carries only the kind", func() {
			err := NewKind("api.op", ErrNotFound)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: not found")
		})

		Convey("Then Wrap keeps nil as nil", func() {
			So(Wrap("api.op", nil), ShouldBeNil)
			So(Wrap("api.op", cause).Error(), ShouldEqual, "api.op: boom")
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given errors from lower layers", t, func() {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{fmt.Errorf("%w: sort", service.ErrInvalidQuery), http.StatusBadRequest, "bad_request"},
			{NewKind("op", ErrBadRequest), http.StatusBadRequest, "bad_request"},
			{fmt.Errorf("%w: \"x\"", repository.ErrNotFound), http.StatusNotFound, "not_found"},
			{service.ErrNotStarted, http.StatusServiceUnavailable, "unavailable"},
			{repository.ErrEmptySnapshot, http.StatusServiceUnavailable, "unavailable"},
			{errors.New("other"), http.StatusInternalServerError, "internal_error"},
		}

		Convey("Then each maps to its status and code", func() {
			for _, c := range cases {
				status, code := classify(c.err)
				So(status, ShouldEqual, c.status)
				So(code, ShouldEqual, c.code)
			}
		})
	})
}

func TestErrorClass(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(errorClass(http.StatusBadRequest), ShouldEqual, "client_error")
		So(errorClass(http.StatusNotFound), ShouldEqual, "not_found")
		So(errorClass(http.StatusServiceUnavailable), ShouldEqual, "unavailable")
		So(errorClass(http.StatusInternalServerError), ShouldEqual, "server_error")
		So(errorClass(http.StatusOK), ShouldEqual, "unknown")
	})
}
