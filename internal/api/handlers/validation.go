package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/pkg/types"
)

// ValidationError ошибка валидации одного поля
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors список ошибок валидации
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Имена полей берём из json тегов
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("date", validateDate)
		_ = validate.RegisterValidation("clock", validateClock)
	})
	return validate
}

// ValidateStruct проверяет теги validate у структуры запроса
func ValidateStruct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	result := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return result
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "gt", "gte", "min":
		return "должно быть не меньше " + fe.Param()
	case "lte", "max":
		return "должно быть не больше " + fe.Param()
	case "date":
		return "ожидается дата в формате YYYY-MM-DD"
	case "clock":
		return "ожидается время в формате HH:MM"
	case "oneof":
		return "допустимые значения: " + fe.Param()
	default:
		return "некорректное значение"
	}
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.DateFormat, fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := types.NewTimeStringFromString(fl.Field().String())
	return err == nil
}
