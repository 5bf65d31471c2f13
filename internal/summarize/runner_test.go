package summarize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/metrics"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/schemas"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/storage"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/summarize"
)

type memStore struct {
	objects map[string][]byte
	deleted []string
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.objects, key)
	return nil
}

func ptr(s string) *string { return &s }

func TestRunner(t *testing.T) {
	convey.Convey("Given a runner over an in-memory store", t, func() {
		store := &memStore{objects: map[string][]byte{"uploads/a.csv": []byte(fiveRows)}}
		r := &summarize.Runner{
			Store:      store,
			Generator:  &recorder{},
			AutoDelete: true,
			Log:        zap.NewNop(),
			Metrics:    metrics.New(),
		}
		ctx := context.Background()

		convey.Convey("When the table comes from the store on a final run", func() {
			out, err := r.Run(ctx, schemas.SummarizeRequest{
				TargetColumns: []string{"title"}, ModelIDs: []string{"m"},
				S3Key: ptr("uploads/a.csv"), RowStart: 5, FinalRun: true,
			})

			convey.Convey("Then rows are summarised and the source is removed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(out), convey.ShouldEqual, 1)
				convey.So(out[0].Models["m"], convey.ShouldEqual, "T5")
				convey.So(store.deleted, convey.ShouldResemble, []string{"uploads/a.csv"})
			})
		})

		convey.Convey("When auto-delete is disabled by the deployment", func() {
			r.AutoDelete = false
			_, err := r.Run(ctx, schemas.SummarizeRequest{
				TargetColumns: []string{"title"}, ModelIDs: []string{"m"},
				S3Key: ptr("uploads/a.csv"), FinalRun: true,
			})

			convey.Convey("Then the source object is kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store.deleted, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When inline content is supplied", func() {
			content := schemas.CSVContent("q\nhello\n")
			out, err := r.Run(ctx, schemas.SummarizeRequest{
				TargetColumns: []string{"q"}, ModelIDs: []string{"m"}, CSVContent: &content,
			})

			convey.Convey("Then the store is not consulted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out[0].Models["m"], convey.ShouldEqual, "HELLO")
			})
		})

		convey.Convey("When the key is missing", func() {
			_, err := r.Run(ctx, schemas.SummarizeRequest{
				TargetColumns: []string{"title"}, ModelIDs: []string{"m"}, S3Key: ptr("uploads/none.csv"),
			})

			convey.Convey("Then ErrNotFound surfaces", func() {
				convey.So(errors.Is(err, storage.ErrNotFound), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When neither source is given", func() {
			_, err := r.Run(ctx, schemas.SummarizeRequest{TargetColumns: []string{"title"}, ModelIDs: []string{"m"}})

			convey.Convey("Then ErrNoSource is returned", func() {
				convey.So(errors.Is(err, summarize.ErrNoSource), convey.ShouldBeTrue)
			})
		})
	})
}
