package analysis

import (
	"math"
	"strings"
)

// Score fusion constants. Penalties are capped so a single noisy signal
// cannot zero out the whole score.
const (
	baseEngagement    = 70
	fillerPenaltyCap  = 25
	gapPenaltyCap     = 20
	speakingRateBonus = 10
	rateBonusFloorWPM = 100
	rateBonusCeilWPM  = 170
)

// Sentiment keyword sets, matched as substrings of the lowercased transcript.
var (
	positiveMarkers = []string{"good", "great", "excellent", "clear", "understand", "important"}
	negativeMarkers = []string{"confuse", "problem", "difficult", "error", "wrong"}
)

// FusionInput carries the per-stage signals feeding score fusion.
type FusionInput struct {
	Transcript       string
	FillerTotal      int
	TotalGapDuration float64
	DurationSeconds  int
	SpeakerCount     int
	IsQualified      bool
}

// FusionResult is the fused scoring outcome. All scores are integers
// clamped to [0,100].
type FusionResult struct {
	TotalWords              int
	SpeakingRateWPM         int
	EngagementScore         int
	VideoEngagementScore    int
	CombinedEngagementScore int
	ClarityScore            int
	ConfidenceScore         int
	TurnTakingFrequency     float64
	OverallSentiment        string
	EmotionalTone           string
}

// ClampScore rounds then clamps a raw score into [0,100].
func ClampScore(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// FuseScores combines transcript, filler, gap, and speaker signals into the
// bounded report scores. An empty transcript yields zero scores, neutral
// sentiment, and a calm tone.
func FuseScores(in FusionInput) FusionResult {
	totalWords := len(strings.Fields(in.Transcript))

	effectiveSpeakingSeconds := math.Max(1, float64(in.DurationSeconds)-in.TotalGapDuration)
	speakingRateWPM := 0
	if totalWords > 0 {
		speakingRateWPM = int(math.Round(float64(totalWords) / effectiveSpeakingSeconds * 60))
	}

	engagementScore := 0
	if totalWords > 0 {
		fillerPenalty := math.Min(fillerPenaltyCap, float64(in.FillerTotal)/float64(totalWords)*200)
		gapPenalty := math.Min(gapPenaltyCap, in.TotalGapDuration/math.Max(1, float64(in.DurationSeconds))*100)
		rateBonus := 0.0
		if speakingRateWPM >= rateBonusFloorWPM && speakingRateWPM <= rateBonusCeilWPM {
			rateBonus = speakingRateBonus
		}
		engagementScore = ClampScore(baseEngagement - fillerPenalty - gapPenalty + rateBonus)
	}

	qualifiedBonus := 0.0
	if in.IsQualified {
		qualifiedBonus = 10
	}
	videoEngagementScore := ClampScore(float64(engagementScore)*0.7 + qualifiedBonus)
	combinedEngagementScore := ClampScore(float64(engagementScore)*0.65 + float64(videoEngagementScore)*0.35)

	clarityScore := 0
	confidenceScore := 0
	if totalWords > 0 {
		clarityScore = ClampScore(75 -
			math.Min(25, float64(in.FillerTotal)/float64(totalWords)*180) -
			math.Min(15, in.TotalGapDuration))
		rateConfidenceBonus := 0.0
		if speakingRateWPM >= rateBonusFloorWPM {
			rateConfidenceBonus = 10
		}
		confidenceScore = ClampScore(float64(combinedEngagementScore)*0.8 + rateConfidenceBonus)
	}

	turnTaking := float64(max(0, in.SpeakerCount-1)) / math.Max(1, float64(in.DurationSeconds)/60)
	turnTaking = math.Round(turnTaking*100) / 100

	sentiment := "neutral"
	tone := "calm"
	if in.Transcript != "" {
		lowered := strings.ToLower(in.Transcript)
		pos, neg := 0, 0
		for _, marker := range positiveMarkers {
			pos += strings.Count(lowered, marker)
		}
		for _, marker := range negativeMarkers {
			neg += strings.Count(lowered, marker)
		}
		if pos >= neg {
			sentiment = "positive"
		}
		tone = "moderate"
		if totalWords > 120 && speakingRateWPM > 110 {
			tone = "active"
		}
	}

	return FusionResult{
		TotalWords:              totalWords,
		SpeakingRateWPM:         speakingRateWPM,
		EngagementScore:         engagementScore,
		VideoEngagementScore:    videoEngagementScore,
		CombinedEngagementScore: combinedEngagementScore,
		ClarityScore:            clarityScore,
		ConfidenceScore:         confidenceScore,
		TurnTakingFrequency:     turnTaking,
		OverallSentiment:        sentiment,
		EmotionalTone:           tone,
	}
}
