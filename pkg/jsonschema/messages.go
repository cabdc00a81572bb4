package jsonschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// describe renders a gojsonschema error in instance-centric wording, e.g.
// "'old' is not of type 'integer'". Kinds without a rendering keep the
// engine's own description.
func describe(re gojsonschema.ResultError) string {
	details := re.Details()
	value := Display(re.Value())

	switch re.Type() {
	case "required":
		return fmt.Sprintf("%s is a required property", strconv.Quote(detail(details, "property")))
	case "invalid_type":
		return fmt.Sprintf("%s is not of type %s", value, typeList(detail(details, "expected")))
	case "enum":
		return fmt.Sprintf("%s is not one of [%s]", value, detail(details, "allowed"))
	case "const":
		return fmt.Sprintf("%s was expected", detail(details, "allowed"))
	case "additional_property_not_allowed":
		return fmt.Sprintf("Additional properties are not allowed (%s was unexpected)", quote(detail(details, "property")))
	case "array_no_additional_items":
		return "Additional items are not allowed"
	case "array_min_items", "string_gte":
		return fmt.Sprintf("%s is too short", value)
	case "array_max_items", "string_lte":
		return fmt.Sprintf("%s is too long", value)
	case "array_min_properties":
		return fmt.Sprintf("%s does not have enough properties", value)
	case "array_max_properties":
		return fmt.Sprintf("%s has too many properties", value)
	case "unique":
		return fmt.Sprintf("%s has non-unique elements", value)
	case "does_not_match_pattern":
		return fmt.Sprintf("%s does not match %s", value, quote(detail(details, "pattern")))
	case "does_not_match_format":
		return fmt.Sprintf("%s is not a %s", value, quote(detail(details, "format")))
	case "multiple_of":
		return fmt.Sprintf("%s is not a multiple of %s", value, detail(details, "multiple"))
	case "number_gte":
		return fmt.Sprintf("%s is less than the minimum of %s", value, detail(details, "min"))
	case "number_gt":
		return fmt.Sprintf("%s is less than or equal to the minimum of %s", value, detail(details, "min"))
	case "number_lte":
		return fmt.Sprintf("%s is greater than the maximum of %s", value, detail(details, "max"))
	case "number_lt":
		return fmt.Sprintf("%s is greater than or equal to the maximum of %s", value, detail(details, "max"))
	case "number_any_of", "number_one_of":
		return fmt.Sprintf("%s is not valid under any of the given schemas", value)
	default:
		return re.Description()
	}
}

func detail(details gojsonschema.ErrorDetails, key string) string {
	v, ok := details[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// typeList quotes every member of "integer" or "[string,null]".
func typeList(expected string) string {
	expected = strings.TrimSuffix(strings.TrimPrefix(expected, "["), "]")
	parts := strings.Split(expected, ",")
	for i, p := range parts {
		parts[i] = quote(strings.TrimSpace(p))
	}
	return strings.Join(parts, ", ")
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// Display renders a JSON value for use inside a message: strings are single
// quoted, everything else is compact JSON.
func Display(v any) string {
	if s, ok := v.(string); ok {
		return quote(s)
	}
	out, err := Encode(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return out
}
