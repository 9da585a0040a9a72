//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shop-api"
	ConsumerName = "storefront"

	StateCatalogBaseline = "built-in catalog is loaded"
	StateCartEmpty       = "cart for pact-user is empty"
	StateCartHasItems    = "cart for pact-user holds two headphones"
)

const (
	ExistingProductID int64 = 1
	MissingProductID  int64 = 999
	CartUserID              = "pact-user"
	VisitorCode             = "0123456789abcdef"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload mirrors the first built-in catalog product.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":          ExistingProductID,
		"name":        "Wireless Headphones",
		"price":       99.99,
		"description": "High-quality wireless headphones with noise cancellation",
		"image":       "/images/headset.jpg",
		"category":    "Electronics",
	}
}

// ExampleLineItemPayload is the cart line the storefront adds.
func ExampleLineItemPayload() map[string]any {
	return map[string]any{
		"productId": ExistingProductID,
		"quantity":  2,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
