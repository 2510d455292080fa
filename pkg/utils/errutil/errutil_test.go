package errutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scribe/pkg/utils/errutil"
)

func TestHandle(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		gt.NoError(t, errutil.Handle(context.Background(), nil, "nothing"))
	})

	t.Run("error is returned unchanged", func(t *testing.T) {
		base := goerr.New("boom", goerr.V("key", "value"))
		err := errutil.Handle(context.Background(), base, "failed")
		gt.Value(t, err).Equal(error(base))
	})
}

func TestHandleHTTP(t *testing.T) {
	t.Run("writes status and message", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, goerr.New("bad input"), http.StatusBadRequest)

		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, w.Body.String()).Contains("bad input")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, nil, http.StatusInternalServerError)

		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, w.Body.Len()).Equal(0)
	})
}
