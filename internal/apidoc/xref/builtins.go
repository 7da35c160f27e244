package xref

const (
	mdnGlobal  = "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/"
	mdnWebAPI  = "https://developer.mozilla.org/en-US/docs/Web/API/"
	mdnProto   = "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Iteration_protocols"
	tsUtility  = "https://www.typescriptlang.org/docs/handbook/utility-types.html#"
	tsHandbook = "https://www.typescriptlang.org/docs/handbook/2/"
)

// Builtins maps well-known platform and standard-library type names to their
// external documentation. It is never modified at runtime.
var Builtins = map[string]string{
	// ECMAScript globals
	"Array":            mdnGlobal + "Array",
	"ArrayBuffer":      mdnGlobal + "ArrayBuffer",
	"AsyncGenerator":   mdnGlobal + "AsyncGenerator",
	"AsyncIterable":    mdnProto + "#the_async_iterator_and_async_iterable_protocols",
	"AsyncIterator":    mdnProto + "#the_async_iterator_and_async_iterable_protocols",
	"BigInt":           mdnGlobal + "BigInt",
	"Boolean":          mdnGlobal + "Boolean",
	"DataView":         mdnGlobal + "DataView",
	"Date":             mdnGlobal + "Date",
	"Error":            mdnGlobal + "Error",
	"Float32Array":     mdnGlobal + "Float32Array",
	"Float64Array":     mdnGlobal + "Float64Array",
	"Function":         mdnGlobal + "Function",
	"Generator":        mdnGlobal + "Generator",
	"Int32Array":       mdnGlobal + "Int32Array",
	"Iterable":         mdnProto + "#the_iterable_protocol",
	"IterableIterator": mdnProto,
	"Iterator":         mdnProto + "#the_iterator_protocol",
	"Map":              mdnGlobal + "Map",
	"Number":           mdnGlobal + "Number",
	"Object":           mdnGlobal + "Object",
	"Promise":          mdnGlobal + "Promise",
	"PromiseLike":      mdnGlobal + "Promise#thenables",
	"RangeError":       mdnGlobal + "RangeError",
	"ReadonlyArray":    tsHandbook + "objects.html#the-readonlyarray-type",
	"RegExp":           mdnGlobal + "RegExp",
	"Set":              mdnGlobal + "Set",
	"String":           mdnGlobal + "String",
	"Symbol":           mdnGlobal + "Symbol",
	"TypeError":        mdnGlobal + "TypeError",
	"Uint8Array":       mdnGlobal + "Uint8Array",
	"WeakMap":          mdnGlobal + "WeakMap",
	"WeakSet":          mdnGlobal + "WeakSet",

	// Web platform
	"AbortController": mdnWebAPI + "AbortController",
	"AbortSignal":     mdnWebAPI + "AbortSignal",
	"Blob":            mdnWebAPI + "Blob",
	"File":            mdnWebAPI + "File",
	"FormData":        mdnWebAPI + "FormData",
	"Headers":         mdnWebAPI + "Headers",
	"ReadableStream":  mdnWebAPI + "ReadableStream",
	"Request":         mdnWebAPI + "Request",
	"Response":        mdnWebAPI + "Response",
	"TextDecoder":     mdnWebAPI + "TextDecoder",
	"TextEncoder":     mdnWebAPI + "TextEncoder",
	"URL":             mdnWebAPI + "URL",
	"URLSearchParams": mdnWebAPI + "URLSearchParams",
	"WritableStream":  mdnWebAPI + "WritableStream",

	// TypeScript utility types
	"Awaited":               tsUtility + "awaitedtype",
	"ConstructorParameters": tsUtility + "constructorparameterstype",
	"Exclude":               tsUtility + "excludeuniontype-excludedmembers",
	"Extract":               tsUtility + "extracttype-union",
	"InstanceType":          tsUtility + "instancetypetype",
	"NonNullable":           tsUtility + "nonnullabletype",
	"Omit":                  tsUtility + "omittype-keys",
	"Parameters":            tsUtility + "parameterstype",
	"Partial":               tsUtility + "partialtype",
	"Pick":                  tsUtility + "picktype-keys",
	"Readonly":              tsUtility + "readonlytype",
	"Record":                tsUtility + "recordkeys-type",
	"Required":              tsUtility + "requiredtype",
	"ReturnType":            tsUtility + "returntypetype",
}

// BuiltinURL returns the documentation URL of a built-in type name.
func BuiltinURL(name string) (string, bool) {
	u, ok := Builtins[name]
	return u, ok
}
