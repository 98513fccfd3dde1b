package validator

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/futig/songsmith/internal/entity"
)

const (
	maxHonoreeLen  = 100
	maxOccasionLen = 200
	maxInputLen    = 500
	maxFeedbackLen = 2000
	maxSubmissions = 200
	maxExtraCredit = 100
)

// Validator checks request shape at the HTTP boundary. The songwriter core
// itself accepts any input, so only limits the service imposes live here.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCompose validates ComposeRequest
func (v *Validator) ValidateCompose(req *entity.ComposeRequest) error {
	if strings.TrimSpace(req.HonoreeName) == "" {
		return fmt.Errorf("%w: honoree_name", entity.ErrMissingField)
	}
	if strings.TrimSpace(req.Occasion) == "" {
		return fmt.Errorf("%w: occasion", entity.ErrMissingField)
	}
	if err := maxLen("honoree_name", req.HonoreeName, maxHonoreeLen); err != nil {
		return err
	}
	if err := maxLen("occasion", req.Occasion, maxOccasionLen); err != nil {
		return err
	}
	if len(req.Submissions) > maxSubmissions {
		return fmt.Errorf("%w: at most %d submissions allowed, got %d", entity.ErrInvalidParameter, maxSubmissions, len(req.Submissions))
	}
	if req.Music.StyleMode != "" {
		if err := req.Music.StyleMode.Validate(); err != nil {
			return fmt.Errorf("%w: music.style_mode: %v", entity.ErrInvalidParameter, err)
		}
	}

	return maxLen("music.style_references", req.Music.StyleReferences, maxInputLen)
}

// ValidateGenerate validates GenerateRequest
func (v *Validator) ValidateGenerate(req *entity.GenerateRequest) error {
	if strings.TrimSpace(req.ProjectID) == "" {
		return fmt.Errorf("%w: project_id", entity.ErrMissingField)
	}
	if err := v.ValidateCompose(&req.ComposeRequest); err != nil {
		return err
	}
	if req.ExtraCredits < 0 || req.ExtraCredits > maxExtraCredit {
		return fmt.Errorf("%w: extra_credits must be between 0 and %d, got %d", entity.ErrInvalidParameter, maxExtraCredit, req.ExtraCredits)
	}
	if err := maxLen("iteration_feedback", req.IterationFeedback, maxFeedbackLen); err != nil {
		return err
	}
	if req.CallbackURL != "" {
		return validateCallbackURL(req.CallbackURL)
	}

	return nil
}

// ValidateInferStyle validates InferStyleRequest
func (v *Validator) ValidateInferStyle(req *entity.InferStyleRequest) error {
	if req.Mode == "" {
		return fmt.Errorf("%w: mode", entity.ErrMissingField)
	}
	if err := req.Mode.Validate(); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}
	if err := maxLen("input", req.Input, maxInputLen); err != nil {
		return err
	}
	if err := maxLen("occasion", req.Occasion, maxOccasionLen); err != nil {
		return err
	}
	if req.Mode != entity.StyleModeSurprise && strings.TrimSpace(req.Input) == "" {
		return fmt.Errorf("%w: input is required for songs and vibe modes", entity.ErrMissingField)
	}

	return nil
}

func maxLen(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Errorf("%w: %s must be at most %d characters, got %d", entity.ErrInvalidParameter, field, limit, n)
	}
	return nil
}

func validateCallbackURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: callback_url must be an absolute http(s) URL", entity.ErrInvalidParameter)
	}
	return nil
}
