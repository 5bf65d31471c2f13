package qa_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/qa"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/sheet"
)

func grouped(t *testing.T, lines ...string) (sheet.Columns, []sheet.Row) {
	t.Helper()
	cols, rows, err := sheet.ParseGrouped(lines)
	if err != nil {
		t.Fatal(err)
	}
	return cols, rows
}

func TestScoreRows(t *testing.T) {
	convey.Convey("Given the minimal grouped sheet", t, func() {
		cols, rows := grouped(t, "Responses", "Row,Q1,Q1Summary", "1,hello,world")

		convey.Convey("When it is scored with one metric and one judge", func() {
			out := qa.ScoreRows(rows, cols, []string{"coherence"}, []string{"judgeA"})

			convey.Convey("Then the record carries the stub values", func() {
				convey.So(len(out), convey.ShouldEqual, 1)
				convey.So(out[0].Row, convey.ShouldEqual, 1)
				convey.So(out[0].Metrics["coherence"], convey.ShouldEqual, qa.MetricScore("coherence", "hello"))
				convey.So(*out[0].Scores["judgeA"], convey.ShouldAlmostEqual, qa.JudgeScore("judgeA", "world"), 1e-9)
			})
		})
	})

	convey.Convey("Given a sheet without summary columns", t, func() {
		cols, rows := grouped(t, "x", "Row,Q1,Q2", "3,a,b", "4,c,d")

		convey.Convey("Then every judge score is null and row count is preserved", func() {
			out := qa.ScoreRows(rows, cols, nil, []string{"j1", "j2"})
			convey.So(len(out), convey.ShouldEqual, 2)
			for _, rec := range out {
				convey.So(rec.Scores, convey.ShouldContainKey, "j1")
				convey.So(rec.Scores["j1"], convey.ShouldBeNil)
				convey.So(rec.Scores["j2"], convey.ShouldBeNil)
				convey.So(rec.Metrics, convey.ShouldBeEmpty)
			}
			convey.So(out[1].Row, convey.ShouldEqual, 4)
		})

		convey.Convey("Then the input text joins inputs in schema order", func() {
			convey.So(qa.InputText(rows[0], cols), convey.ShouldEqual, "a b")
		})
	})

	convey.Convey("Given rows with unusable row numbers", t, func() {
		cols, rows := grouped(t, "x", "Row,Q1", "abc,a", ",b")

		convey.Convey("Then they fall back to zero", func() {
			out := qa.ScoreRows(rows, cols, []string{"m"}, nil)
			convey.So(out[0].Row, convey.ShouldEqual, 0)
			convey.So(out[1].Row, convey.ShouldEqual, 0)
		})
	})
}

func TestLenientInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"7", 7},
		{" 12 ", 12},
		{"-3", -3},
		{"", 0},
		{"1.5", 0},
		{"row", 0},
	}
	for _, c := range cases {
		if got := qa.LenientInt(c.in, 0); got != c.want {
			t.Errorf("LenientInt(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
