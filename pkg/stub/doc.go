// Package stub defines the data model of the stubbing engine: the normalized
// request view every intercepted call is reduced to, the canned Response a
// stub answers with, and the Stub type binding field matchers to a response.
//
// A typical declaration uses the fluent builder:
//
//	s := stub.For("POST", "http://api.test/orders").
//		Header("Content-Type", "application/json").
//		Body(match.MustJSONPath("$.sku", "A-1")).
//		Reply(201).
//		ReplyBody([]byte(`{"id":"o-1"}`)).
//		MustBuild()
//
// Stubs are immutable once built; register them with an interceptor to make
// them live.
package stub
