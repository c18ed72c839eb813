// Package slug converts display names into URL- and DNS-safe identifiers and
// validates the strict slug format used for tenant subdomains.
//
// Tenant slugs double as subdomain labels and as input for schema-name
// derivation, so the rules here are deliberately stricter than generic
// slugification: lowercase ASCII letters, digits and single inner hyphens
// only, capped at the 63-byte DNS label limit.
//
//	s := slug.Make("Acme Café & Co.") // "acme-cafe-co"
//	if !slug.IsValid(s) {
//		// reject before provisioning
//	}
package slug
