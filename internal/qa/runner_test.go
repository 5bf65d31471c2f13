package qa_test

import (
	"context"
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/metrics"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/qa"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/schemas"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/storage"
)

type memStore struct {
	objects   map[string][]byte
	deleted   []string
	deleteErr error
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, key)
	return nil
}

const sample = "\ufeffResponses\r\nRow,Q1,Q1Summary\r\n1,hello,world\r\n2,foo,bar\r\n"

func TestRunnerEvaluate(t *testing.T) {
	convey.Convey("Given a runner with one staged sheet", t, func() {
		store := &memStore{objects: map[string][]byte{"temp2/a.csv": []byte(sample)}}
		r := &qa.Runner{Store: store, AutoDelete: true, Log: zap.NewNop(), Metrics: metrics.New()}
		ctx := context.Background()
		req := schemas.EvaluateRequest{
			S3Key:         "temp2/a.csv",
			JudgeModelIDs: []string{"judgeA"},
			Metrics:       []string{"coherence"},
		}

		convey.Convey("When it is evaluated as a trial run", func() {
			out, err := r.Evaluate(ctx, req)

			convey.Convey("Then every row is scored and the object is kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(out), convey.ShouldEqual, 2)
				convey.So(out[1].Row, convey.ShouldEqual, 2)
				convey.So(store.deleted, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When it is evaluated as a final run", func() {
			req.FinalRun = true
			_, err := r.Evaluate(ctx, req)

			convey.Convey("Then the object is deleted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store.deleted, convey.ShouldResemble, []string{"temp2/a.csv"})
			})
		})

		convey.Convey("When deletion fails on a final run", func() {
			req.FinalRun = true
			store.deleteErr = errors.New("access denied")
			out, err := r.Evaluate(ctx, req)

			convey.Convey("Then the scores are still returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(out), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the deployment disables auto-delete", func() {
			req.FinalRun = true
			r.AutoDelete = false
			_, err := r.Evaluate(ctx, req)
			convey.So(err, convey.ShouldBeNil)
			convey.So(store.deleted, convey.ShouldBeEmpty)
		})

		convey.Convey("When the key does not exist", func() {
			req.S3Key = "temp2/missing.csv"
			_, err := r.Evaluate(ctx, req)
			convey.So(errors.Is(err, storage.ErrNotFound), convey.ShouldBeTrue)
		})

		convey.Convey("When the sheet is too short", func() {
			store.objects["temp2/short.csv"] = []byte("Responses\nRow,Q1\n")
			req.S3Key = "temp2/short.csv"
			_, err := r.Evaluate(ctx, req)
			convey.So(errors.Is(err, sheet.ErrMalformedInput), convey.ShouldBeTrue)
		})
	})
}
