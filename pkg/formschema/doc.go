// Package formschema describes the signup form. Field constraints come from
// the OpenAPI document of the identity service's signup operation; labels,
// placeholders, ordering and icons come from a YAML overlay. Both documents
// are embedded so the web modal and the terminal flow present the same form.
package formschema
