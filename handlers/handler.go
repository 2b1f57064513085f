package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"food-ordering-api/logging"
	"food-ordering-api/middleware"
	"food-ordering-api/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Handler serves every API endpoint over a shared store and token service.
type Handler struct {
	Store  *store.Store
	Tokens *middleware.TokenService
}

func New(s *store.Store, tokens *middleware.TokenService) *Handler {
	return &Handler{Store: s, Tokens: tokens}
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the notblank tag to gin's validator and makes
// validation errors report JSON field names. Binding panics on an
// unregistered tag, so callers must not serve requests after an error.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("register validators: unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("notblank", notBlank); err != nil {
			registerErr = fmt.Errorf("register validators: notblank: %w", err)
		}
	})
	return registerErr
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return !field.IsZero()
}

// bindingMessage turns a binding error into a client-facing message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body: " + err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, fe.Field()+" is required")
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// serverError reports a storage failure with its underlying message.
func serverError(c *gin.Context, event string, err error) {
	logging.FromContext(c.Request.Context()).Error(event, "status", http.StatusInternalServerError, "error", err)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func clientError(c *gin.Context, status int, event, msg string) {
	logging.FromContext(c.Request.Context()).Warn(event, "status", status, "reason", msg)
	c.JSON(status, gin.H{"error": msg})
}
