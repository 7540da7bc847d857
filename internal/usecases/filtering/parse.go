package filtering

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/erp-report-api/internal/domain"
	"github.com/vfg2006/erp-report-api/pkg/utils"
)

// Input é o filtro em texto, como chega pela API ou pela linha de comando.
// Datas aceitam formato ISO ou local (dia primeiro).
type Input struct {
	DateField string            `json:"date_field" validate:"required_with=Start End"`
	Start     string            `json:"start_date"`
	End       string            `json:"end_date"`
	Text      map[string]string `json:"text" validate:"dive,keys,required,endkeys"`
	Exact     map[string]string `json:"exact" validate:"dive,keys,required,endkeys"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseFilterSpec valida a entrada e converte para FilterSpec
func ParseFilterSpec(in Input) (domain.FilterSpec, error) {
	if err := validate.Struct(in); err != nil {
		return domain.FilterSpec{}, toFilterError(err)
	}

	spec := domain.FilterSpec{
		DateField:    strings.TrimSpace(in.DateField),
		TextFilters:  compact(in.Text),
		ExactFilters: compact(in.Exact),
	}

	start, err := parseBound("start_date", in.Start)
	if err != nil {
		return domain.FilterSpec{}, err
	}

	end, err := parseBound("end_date", in.End)
	if err != nil {
		return domain.FilterSpec{}, err
	}

	if start != nil && end != nil && start.After(*end) {
		return domain.FilterSpec{}, &FilterError{Field: "start_date", Reason: "start date is after end date"}
	}

	spec.Start = start
	spec.End = end

	return spec, nil
}

func parseBound(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	date, ok := utils.NormalizeDate(value)
	if !ok {
		return nil, &FilterError{Field: field, Reason: "invalid date " + value}
	}

	return &date, nil
}

// compact remove filtros sem valor, que equivalem a nenhuma restrição
func compact(filters map[string]string) map[string]string {
	if len(filters) == 0 {
		return nil
	}

	out := make(map[string]string, len(filters))
	for field, value := range filters {
		field = strings.TrimSpace(field)
		if field == "" || strings.TrimSpace(value) == "" {
			continue
		}
		out[field] = value
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

func toFilterError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &FilterError{Field: "filter", Reason: err.Error()}
	}

	first := validationErrors[0]
	reason := "failed on " + first.Tag()
	switch first.Tag() {
	case "required_with":
		reason = "date field is required when a date bound is set"
	case "required":
		reason = "filter field name is required"
	}

	return &FilterError{Field: first.Field(), Reason: reason}
}
