// Package derivation maps raw EPH survey codes to descriptive categories.
//
// Every function is total: unexpected codes map to an explicit sentinel
// category instead of an empty value. HousingDensity is the only function that
// reports an error, because a zero room count has no meaningful category.
package derivation
