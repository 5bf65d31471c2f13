package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/generate"
	"github.com/MasterDavvy/LLM-Summeriser-Scoring/internal/qa"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvaluateCommand(t *testing.T) {
	p := writeFile(t, "g.csv", "Responses\nRow,Q1,Q1Summary\n1,hello,world\n")

	out, err := execute(t, "evaluate", p, "--metric", "coherence", "--judge", "judgeA", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Judgements []qa.ScoredRecord `json:"judgements"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Judgements, 1)
	assert.Equal(t, qa.MetricScore("coherence", "hello"), doc.Judgements[0].Metrics["coherence"])
}

func TestEvaluateCommandRejectsShortFile(t *testing.T) {
	p := writeFile(t, "short.csv", "Responses\nRow,Q1\n")
	_, err := execute(t, "evaluate", p, "--format", "json")
	assert.ErrorContains(t, err, "CSV missing data rows")
}

type shout struct{}

func (shout) Generate(_ context.Context, _, prompt string) (string, error) {
	return strings.ToUpper(prompt), nil
}

func TestSummarizeCommandYAML(t *testing.T) {
	orig := newGenerator
	newGenerator = func(context.Context) (generate.Generator, error) { return shout{}, nil }
	t.Cleanup(func() { newGenerator = orig })

	p := writeFile(t, "flat.csv", "id,title\n1,a\n2,b\n3,c\n")
	out, err := execute(t, "summarize", p, "--column", "title", "--model", "m", "--start", "2", "--end", "2", "--format", "yaml")
	require.NoError(t, err)

	var doc struct {
		Summaries []struct {
			Row    int               `yaml:"row"`
			Models map[string]string `yaml:"models"`
		} `yaml:"summaries"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Summaries, 1)
	assert.Equal(t, 2, doc.Summaries[0].Row)
	assert.Equal(t, "B", doc.Summaries[0].Models["m"])
}

func TestRenderUnknownFormat(t *testing.T) {
	assert.Error(t, render(&bytes.Buffer{}, "xml", 1))
}
