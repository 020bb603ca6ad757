// Package schema validates scenario documents before they are decoded.
//
// The scenario schema is a JSON schema embedded in the binary (see Source).
// Validation runs on the generic value produced by a YAML or JSON decoder,
// so structural mistakes are reported with their field paths instead of
// surfacing later as decode errors:
//
//	var raw any
//	_ = yaml.Unmarshal(data, &raw)
//	if err := schema.Validate(raw); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// ValidationError and AggregateError are also used by other packages to
// report semantic problems such as references to unknown stores.
package schema
