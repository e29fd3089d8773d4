// Package locale defines the supported response languages and the per-language
// prompt and error-message bundles used by the summarization pipeline.
// Lookup is an exhaustive switch over an enumerated type, so a locale can only
// be added together with its bundle.
package locale

import "strings"

// Locale identifies a supported response language.
type Locale string

const (
	// Korean is the default locale.
	Korean Locale = "ko"
	// English is the secondary locale.
	English Locale = "en"
)

// Default is the locale used when a request omits the locale field or
// supplies a tag this service does not recognize.
const Default = Korean

// Parse maps a request locale tag to a known Locale.
// Unknown or empty tags fall back to Default rather than failing, so an
// error-message lookup can never miss.
func Parse(tag string) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(tag))) {
	case Korean:
		return Korean
	case English:
		return English
	default:
		return Default
	}
}

// Tag returns the wire-format language tag ("ko", "en").
func (l Locale) Tag() string {
	return string(l)
}

// Bundle holds the locale-specific texts for one language: the two prompt
// parts sent to the language model and the user-facing error messages.
type Bundle struct {
	// SystemPrompt is the persona/style instruction sent as the system message.
	SystemPrompt string

	// UserPrefix is prepended to the content source in the user message.
	UserPrefix string

	// ErrInvalidURL is returned when no video identifier can be extracted.
	ErrInvalidURL string

	// ErrNoContent is returned when the video has no usable description.
	ErrNoContent string

	// ErrGeneration is returned when the model response carries no summary text.
	ErrGeneration string

	// ErrUpstreamFormat embeds the upstream failure description via one %s verb.
	ErrUpstreamFormat string
}

var koreanBundle = Bundle{
	// 한국어 기본 번들
	SystemPrompt: "당신은 유튜브 영상 내용을 요약하는 전문 어시스턴트입니다. " +
		"핵심 내용을 명확하고 간결하게 정리하고, 반드시 한국어로 답변하세요.",
	UserPrefix: "다음 유튜브 영상의 제목과 설명을 바탕으로 핵심 내용을 요약해 주세요. " +
		"중요한 주제는 글머리 기호로 정리해 주세요.\n\n",
	ErrInvalidURL:     "유효한 유튜브 영상 주소를 찾을 수 없습니다.",
	ErrNoContent:      "요약할 수 있는 자막이나 설명이 없습니다.",
	ErrGeneration:     "요약 생성에 실패했습니다.",
	ErrUpstreamFormat: "요약 서비스 호출 중 오류가 발생했습니다: %s",
}

var englishBundle = Bundle{
	SystemPrompt: "You are an assistant that summarizes YouTube videos. " +
		"Identify the key points and present them clearly and concisely in English.",
	UserPrefix: "Summarize the main points of the following YouTube video based on " +
		"its title and description. Use bullet points for the key topics.\n\n",
	ErrInvalidURL:     "No valid YouTube video URL was found.",
	ErrNoContent:      "No transcript or description is available to summarize.",
	ErrGeneration:     "Failed to generate summary.",
	ErrUpstreamFormat: "The summarization service failed: %s",
}

// Bundle returns the text bundle for the locale.
// The switch is exhaustive over the defined locales; anything else (which
// Parse never produces) gets the default bundle.
func (l Locale) Bundle() Bundle {
	switch l {
	case Korean:
		return koreanBundle
	case English:
		return englishBundle
	default:
		return Default.Bundle()
	}
}
