package qa

// Stub ranges. These stand in for a real metric model and judge model.
const (
	metricLow, metricHigh = 0.2, 0.95
	metricDecimals        = 2
	metricSeedChars       = 50

	judgeLow, judgeHigh = 6.0, 9.8
	judgeDecimals       = 1
	judgeSeedChars      = 80

	averageDecimals = 2
)

// MetricScore is the placeholder score of metric for text. Only the first
// 50 characters of text take part in the seed.
func MetricScore(metric, text string) float64 {
	return Score(metric+prefix(text, metricSeedChars), metricLow, metricHigh, metricDecimals)
}

// JudgeScore is the placeholder verdict of judge model on one summary.
// Only the first 80 characters of text take part in the seed.
func JudgeScore(model, text string) float64 {
	return Score(model+prefix(text, judgeSeedChars), judgeLow, judgeHigh, judgeDecimals)
}

// JudgeAverage is the mean JudgeScore over summaries rounded to two places,
// or nil when there is nothing to judge.
func JudgeAverage(model string, summaries []string) *float64 {
	if len(summaries) == 0 {
		return nil
	}
	var total float64
	for _, s := range summaries {
		total += JudgeScore(model, s)
	}
	avg := round(total/float64(len(summaries)), averageDecimals)
	return &avg
}
