package catalog

import (
	"strings"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/pipeline"
)

// ToProduct maps a backend product to generator input. Relative asset URLs
// are resolved against assetBase; blank diagram URLs are dropped.
func ToProduct(dto *ProductDTO, assetBase string) *specsheet.Product {
	if dto == nil {
		return nil
	}
	resolve := func(ref string) string { return pipeline.ResolveURL(assetBase, ref) }

	p := &specsheet.Product{
		ID:          dto.ID,
		Name:        strings.TrimSpace(dto.Name),
		Code:        strings.TrimSpace(dto.Code),
		Description: dto.Description,
		ImageURL:    resolve(dto.ImageURL),
	}

	for _, d := range dto.ProductDiagrams {
		if d = strings.TrimSpace(d); d != "" {
			p.Diagrams = append(p.Diagrams, resolve(d))
		}
	}

	for _, c := range dto.Certificates {
		cert := specsheet.Certificate{Name: c.Name}
		for _, v := range c.SelectedValues {
			cert.Values = append(cert.Values, specsheet.CertificateValue{
				Value:    v.Value,
				ImageURL: resolve(v.ImageURL),
			})
		}
		p.Certificates = append(p.Certificates, cert)
	}

	// An absent or empty list draws no section. Groups that exist but carry
	// no selected values get the "No accessories selected" notice.
	if len(dto.Accessories) > 0 {
		p.Accessories = make([]specsheet.AccessoryGroup, 0, len(dto.Accessories))
		for _, a := range dto.Accessories {
			group := specsheet.AccessoryGroup{ID: a.ID, Name: a.Name}
			for _, v := range a.SelectedValues {
				group.Values = append(group.Values, specsheet.Accessory{
					ID:        v.ID,
					Value:     v.Value,
					ShortForm: v.ShortForm,
					ImageURL:  resolve(v.ImageURL),
				})
			}
			p.Accessories = append(p.Accessories, group)
		}
	}

	for _, cat := range dto.SpecSheet {
		category := specsheet.FeatureCategory{Name: cat.CategoryName}
		for _, item := range cat.Items {
			if len(item.SelectedValues) == 0 {
				continue
			}
			feature := specsheet.Feature{Name: item.Name}
			for _, v := range item.SelectedValues {
				feature.Values = append(feature.Values, v.Value)
			}
			category.Items = append(category.Items, feature)
		}
		p.Features = append(p.Features, category)
	}

	return p
}
