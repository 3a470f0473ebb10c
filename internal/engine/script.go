package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"shortfactory/internal/types"
	"shortfactory/log"
	"shortfactory/pkg/errors"
	"shortfactory/pkg/openai"
	"shortfactory/pkg/util"
)

// platformPrompts tailor the script request to each platform's register.
var platformPrompts = map[string]string{
	types.PlatformYouTubeShorts: "Create an engaging YouTube Shorts script about %s. " +
		"Focus on quick, attention-grabbing content with clear value proposition. " +
		"Duration: %.0f seconds.",
	types.PlatformInstagramReels: "Write an Instagram Reels script about %s. " +
		"Make it trendy and visually descriptive with potential for overlay text. " +
		"Duration: %.0f seconds.",
	types.PlatformTikTok: "Create a TikTok script about %s. " +
		"Include trending audio/music cues and make it highly engaging from the " +
		"first second. Duration: %.0f seconds.",
}

const scriptFormatInstruction = ` Respond with JSON only, using this shape:
{"title": "...", "intro": "...", "main": "...", "outro": "...", "captions": ["...", "..."]}`

// keywordLabels is the fixed category set used for clip search.
var keywordLabels = []string{
	"landscape", "people", "action", "nature", "urban",
	"technology", "lifestyle", "business", "sports", "food",
}

// OpenAIScriptProvider generates scripts and keywords through the chat API.
type OpenAIScriptProvider struct {
	Client *openai.Client
}

func (p *OpenAIScriptProvider) GenerateScript(ctx context.Context, topic, platform string, duration float64) (types.Script, error) {
	tmpl, ok := platformPrompts[platform]
	if !ok {
		tmpl = platformPrompts[types.PlatformYouTubeShorts]
	}
	prompt := fmt.Sprintf(tmpl, topic, duration) + scriptFormatInstruction

	reply, err := p.Client.ChatCompletion(ctx, prompt)
	if err != nil {
		return types.Script{}, err
	}

	var script types.Script
	jsonStr := util.ExtractJsonFromText(reply)
	if err := json.Unmarshal([]byte(jsonStr), &script); err != nil {
		log.GetLogger().Error("script response parse failed",
			zap.String("response", reply), zap.Error(err))
		return types.Script{}, errors.Wrap(errors.CodeScriptFailed, "Script generation failed", err)
	}
	if strings.TrimSpace(script.Title) == "" && len(script.Captions) == 0 {
		return types.Script{}, errors.WrapWithDetail(errors.CodeScriptFailed, "Script generation failed",
			"model returned an empty script", nil)
	}
	return script, nil
}

func (p *OpenAIScriptProvider) ExtractKeywords(ctx context.Context, script types.Script) ([]string, error) {
	prompt := fmt.Sprintf(
		"Classify the following video script into the three best matching categories "+
			"from this list: %s. Respond with a JSON array of exactly three category "+
			"names.\n\nScript:\n%s",
		strings.Join(keywordLabels, ", "), scriptText(script))

	reply, err := p.Client.ChatCompletion(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var keywords []string
	jsonStr := util.ExtractJsonFromText(reply)
	if err := json.Unmarshal([]byte(jsonStr), &keywords); err != nil {
		log.GetLogger().Error("keyword response parse failed",
			zap.String("response", reply), zap.Error(err))
		return nil, errors.Wrap(errors.CodeKeywordsFailed, "Keyword extraction failed", err)
	}
	if len(keywords) == 0 {
		return nil, errors.WrapWithDetail(errors.CodeKeywordsFailed, "Keyword extraction failed",
			"model returned no categories", nil)
	}
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	return keywords, nil
}

func scriptText(s types.Script) string {
	parts := []string{s.Title, s.Intro, s.Main, s.Outro}
	parts = append(parts, s.Captions...)
	var b strings.Builder
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}
