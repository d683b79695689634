// Package jsunit runs module factories written in JavaScript on a goja
// runtime shared by every JS unit of one Environment.
//
// A unit body is wrapped the CommonJS way, as
//
//	(function (module, exports, require) { <body> })
//
// so `exports.x = ...`, `module.exports = ...` and `require("./y")` behave
// as they do in Node. Exports objects created by the registry are exposed to
// JavaScript as live views: a property set from JS is visible to Go and
// the other way round, and the object keeps its identity across requires,
// which is what makes circular requires between JS and Go units work.
package jsunit
