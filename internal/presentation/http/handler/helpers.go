package handler

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sangkips/daybook-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// parseID reads a positive numeric :id path parameter
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NewValidationError("id", "id must be a positive integer")
	}
	return uint(id), nil
}

// bindJSON decodes the body into obj. When a single value cannot be decoded
// the error names its JSON key.
func bindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindBodyWith(obj, binding.JSON)
	if err == nil {
		return nil
	}

	if body, ok := c.Get(gin.BodyBytesKey); ok {
		if b, ok := body.([]byte); ok {
			if appErr := fieldError(obj, b); appErr != nil {
				return appErr
			}
		}
	}
	return apperror.NewValidationError("", "Invalid request body")
}

// fieldError decodes body key by key against obj's fields and reports the
// first value that does not fit its field's type
func fieldError(obj interface{}, body []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := strings.Split(f.Tag.Get("json"), ",")[0]
		if key == "" || key == "-" {
			continue
		}
		value, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, reflect.New(f.Type).Interface()); err == nil {
			continue
		}

		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft == decimalType {
			return apperror.NewValidationError(key, key+" must be a number")
		}
		return apperror.NewValidationError(key, key+" has the wrong type")
	}
	return nil
}
