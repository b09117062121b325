package catalog

// Wire types of the product backend. Field names follow the API.

// envelope wraps every API response body.
type envelope[T any] struct {
	Data T `json:"data"`
}

// ProductDTO is a product as returned by GET /product/{id}.
type ProductDTO struct {
	ID              string            `json:"_id"`
	Name            string            `json:"name"`
	Code            string            `json:"code"`
	Description     string            `json:"description"`
	ImageURL        string            `json:"imageUrl"`
	ProductDiagrams []string          `json:"product_diagrams"`
	Specifications  []SpecGroupDTO    `json:"specifications"`
	SpecSheet       []SpecCategoryDTO `json:"specSheet"`
	Accessories     []SelectionDTO    `json:"accessories"`
	Certificates    []SelectionDTO    `json:"certificates"`
	Resources       []ResourceDTO     `json:"resources,omitempty"`
}

// SpecGroupDTO is one selectable specification, e.g. "CCT", with every
// option the catalog knows and the subset offered for this product.
type SpecGroupDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Specifications []SpecOptionDTO `json:"specifications"`
	SelectedSpecs  []SpecRefDTO    `json:"selected_specs"`
}

// SpecOptionDTO is one option of a specification group.
type SpecOptionDTO struct {
	ID   string `json:"_id"`
	Spec string `json:"spec"`
	Code string `json:"code"`
}

// SpecRefDTO references an option by id.
type SpecRefDTO struct {
	ID string `json:"_id"`
}

// SpecCategoryDTO is a feature category of the product data sheet.
type SpecCategoryDTO struct {
	CategoryName string             `json:"categoryName"`
	Items        []SpecSheetItemDTO `json:"items"`
}

// SpecSheetItemDTO is one feature row.
type SpecSheetItemDTO struct {
	Name           string     `json:"name"`
	SelectedValues []ValueDTO `json:"selected_values"`
}

// SelectionDTO is a named group of selected values, used for accessories
// and certificates.
type SelectionDTO struct {
	ID             string     `json:"_id"`
	Name           string     `json:"name"`
	SelectedValues []ValueDTO `json:"selected_values"`
}

// ValueDTO is one selected value.
type ValueDTO struct {
	ID        string `json:"_id"`
	Value     string `json:"value"`
	ShortForm string `json:"short_form"`
	ImageURL  string `json:"image_url"`
}

// ResourceDTO is a downloadable product resource.
type ResourceDTO struct {
	Name    string `json:"name"`
	FileURL string `json:"fileUrl"`
}

// Taxon is an entry of a product taxonomy (type, category, group or
// specification).
type Taxon struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// listRequest is the body of POST /product/all.
type listRequest struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`
}
