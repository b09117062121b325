// Package specsheet generates product specification sheet PDFs for lighting
// products.
//
// # Quick Start
//
// Create a generator, generate a sheet, and close when done:
//
//	gen, err := specsheet.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, specsheet.Input{
//	    Product:  &specsheet.Product{Name: "Linea 40", Code: "LN40"},
//	    Selected: specsheet.SelectedSpecifications{{Name: "CCT", Value: "3000K"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.FileName, result.PDF, 0644)
//
// # Document Layout
//
// Sections are drawn in a fixed order:
//
//  1. Title with product name, product code and certificate badges
//  2. Product details: description and product photo
//  3. Drawings grid (omitted when the product has none)
//  4. Selected specifications as a two-column list
//  5. One block per feature category
//  6. Accessories with thumbnails
//
// A footer with the logo, optional date and text is drawn on every page.
//
// # Images
//
// Remote images are fetched, flattened onto white, downscaled and
// re-encoded before embedding. A failed image never aborts generation: a
// grey placeholder of the same size is drawn instead. Enable
// WithBrowserFallback to rasterize stubborn images in headless Chrome.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := specsheet.NewGenerator(
//	    specsheet.WithTimeout(2 * time.Minute),
//	    specsheet.WithLogo("./brand.png"),
//	    specsheet.WithLogger(logger),
//	)
//
// Per-document settings are passed via Input:
//
//	result, err := gen.Generate(ctx, specsheet.Input{
//	    Product:     product,
//	    ProductCode: "LN40 30K",
//	    Page:        &specsheet.PageSettings{Size: "letter", Orientation: "portrait", Margin: 15},
//	    Footer:      &specsheet.Footer{Text: "example.com", Date: "auto"},
//	})
//
// # Parallel Processing
//
// For batch generation, use GeneratorPool:
//
//	pool := specsheet.NewGeneratorPool(4)
//	defer pool.Close()
//
//	gen, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(gen)
//	result, err := gen.Generate(ctx, input)
package specsheet
