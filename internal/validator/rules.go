package validator

import (
	"github.com/go-playground/validator/v10"
)

// Platforms and content types accepted on postings and orders.
var knownPlatforms = map[string]bool{
	"instagram": true,
	"tiktok":    true,
	"youtube":   true,
	"twitch":    true,
	"x":         true,
	"facebook":  true,
	"linkedin":  true,
	"podcast":   true,
}

var knownContentTypes = map[string]bool{
	"post":      true,
	"story":     true,
	"reel":      true,
	"video":     true,
	"short":     true,
	"live":      true,
	"review":    true,
	"unboxing":  true,
	"giveaway":  true,
	"takeover":  true,
}

func registerCustomRules(v *validator.Validate) error {
	if err := v.RegisterValidation("platform", validatePlatform); err != nil {
		return err
	}
	return v.RegisterValidation("contenttype", validateContentType)
}

func validatePlatform(fl validator.FieldLevel) bool {
	return knownPlatforms[fl.Field().String()]
}

func validateContentType(fl validator.FieldLevel) bool {
	return knownContentTypes[fl.Field().String()]
}
