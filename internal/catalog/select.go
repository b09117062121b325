package catalog

import (
	"fmt"
	"strings"

	specsheet "github.com/alnah/go-specsheet"
)

// Choice is one user selection: a specification group name and the chosen
// option, given by its label or its code.
type Choice struct {
	Name  string
	Value string
}

// ParseChoices parses "Name=Value" arguments.
func ParseChoices(args []string) ([]Choice, error) {
	out := make([]Choice, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("%w: %q (want Name=Value)", ErrInvalidChoice, arg)
		}
		out = append(out, Choice{Name: name, Value: value})
	}
	return out, nil
}

// Selection is the resolved user choice for one product.
type Selection struct {
	Specifications specsheet.SelectedSpecifications
	// FullCode is the product code followed by the chosen option codes, in
	// specification order, separated by spaces.
	FullCode string
}

// Select resolves choices against the product's specification groups.
// Only options listed in a group's selected_specs may be chosen. Names and
// values match case-insensitively. Groups without a choice are omitted.
func Select(dto *ProductDTO, choices []Choice) (Selection, error) {
	if dto == nil {
		return Selection{}, ErrNotFound
	}

	byGroup := make(map[string]string, len(choices))
	for _, c := range choices {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if _, dup := byGroup[key]; dup {
			return Selection{}, fmt.Errorf("%w: %q chosen more than once", ErrInvalidChoice, c.Name)
		}
		byGroup[key] = strings.TrimSpace(c.Value)
	}

	var sel Selection
	codes := []string{strings.TrimSpace(dto.Code)}
	matched := 0

	for _, group := range dto.Specifications {
		want, ok := byGroup[strings.ToLower(strings.TrimSpace(group.Name))]
		if !ok {
			continue
		}
		matched++

		option, err := findOption(group, want)
		if err != nil {
			return Selection{}, err
		}
		sel.Specifications = append(sel.Specifications, specsheet.Specification{
			Name:  group.Name,
			Value: option.Spec,
		})
		if code := strings.TrimSpace(option.Code); code != "" {
			codes = append(codes, code)
		}
	}

	if matched != len(byGroup) {
		for _, c := range choices {
			if !hasGroup(dto, c.Name) {
				return Selection{}, fmt.Errorf("%w: no specification named %q", ErrUnavailableSpec, c.Name)
			}
		}
	}

	sel.FullCode = strings.TrimSpace(strings.Join(codes, " "))
	return sel, nil
}

// findOption returns the offered option whose label or code equals value.
func findOption(group SpecGroupDTO, value string) (SpecOptionDTO, error) {
	offered := make(map[string]bool, len(group.SelectedSpecs))
	for _, ref := range group.SelectedSpecs {
		offered[ref.ID] = true
	}

	for _, opt := range group.Specifications {
		if !strings.EqualFold(opt.Spec, value) && !strings.EqualFold(opt.Code, value) {
			continue
		}
		if !offered[opt.ID] {
			return SpecOptionDTO{}, fmt.Errorf("%w: %s=%s", ErrUnavailableSpec, group.Name, value)
		}
		return opt, nil
	}
	return SpecOptionDTO{}, fmt.Errorf("%w: %s=%s (unknown option)", ErrUnavailableSpec, group.Name, value)
}

func hasGroup(dto *ProductDTO, name string) bool {
	for _, g := range dto.Specifications {
		if strings.EqualFold(strings.TrimSpace(g.Name), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// Options lists the offered options of every specification group, in
// order. Used by help output and the server's 400 responses.
func Options(dto *ProductDTO) map[string][]string {
	out := make(map[string][]string, len(dto.Specifications))
	for _, group := range dto.Specifications {
		offered := make(map[string]bool, len(group.SelectedSpecs))
		for _, ref := range group.SelectedSpecs {
			offered[ref.ID] = true
		}
		var values []string
		for _, opt := range group.Specifications {
			if offered[opt.ID] {
				values = append(values, opt.Spec)
			}
		}
		out[group.Name] = values
	}
	return out
}
