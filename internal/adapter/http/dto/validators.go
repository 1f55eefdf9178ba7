package dto

import (
	"reflect"
	"regexp"
	"strings"

	"client-wallet-service/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidations(v)
	}
}

// RegisterValidations installs the custom tags on v.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("safe_id", validateSafeID)
	_ = v.RegisterValidation("site_host", validateSiteHost)
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateSiteHost accepts a lowercase host name with an optional port.
func validateSiteHost(fl validator.FieldLevel) bool {
	return domain.ValidSiteName(fl.Field().String())
}

// TrimStruct trims whitespace from every exported string field (including
// *string and slices of structs) of a struct pointer. Markup is stored as
// received; escaping is left to whoever renders it.
func TrimStruct(v interface{}) {
	walkStrings(v, strings.TrimSpace)
}

func walkStrings(v interface{}, fn func(string) string) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rewriteFields(rv.Elem(), fn)
}

func rewriteFields(rv reflect.Value, fn func(string) string) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(fn(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(fn(elem.String()))
			}
		case reflect.Slice:
			for j := 0; j < f.Len(); j++ {
				if el := f.Index(j); el.Kind() == reflect.Struct {
					rewriteFields(el, fn)
				}
			}
		}
	}
}
