// Package moduleio reads and writes module graphs as YAML module documents.
//
// A module document lists a module's types with their members, flags and
// custom attributes. Type references use the IL spelling "[scope]Full.Name";
// a reference without scope points into the module itself, and an empty
// reference is unresolved.
//
// # Document shape
//
//	module: Assembly-CSharp
//	core_library: mscorlib
//	references: [mscorlib, UnityEngine]
//	types:
//	  - namespace: EFT
//	    name: Player
//	    attributes: [public, before_field_init]
//	    base: "[mscorlib]System.Object"
//	    custom_attributes:
//	      - type: "[mscorlib]System.SerializableAttribute"
//	    fields:
//	      - {name: health, attributes: [private], type: "[mscorlib]System.Int32"}
//	    methods:
//	      - name: get_Health
//	        attributes: [public, hide_by_sig, special_name]
//	        returns: "[mscorlib]System.Int32"
//	    properties:
//	      - {name: Health, type: "[mscorlib]System.Int32", get: get_Health}
//	    nested_types: []
//
// # Resolution
//
// The Reader takes signature references at face value. Attribute-type
// references are checked: against the module's own types, or against the
// document of the referenced module found in the search directories. A
// reference that cannot be checked becomes unresolved; it is never an error.
//
// The Writer validates structure, then writes through a temporary file and a
// rename so a failed write leaves nothing behind.
package moduleio
