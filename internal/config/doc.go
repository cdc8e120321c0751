// Package config defines the format-agnostic model of a folio: the named
// graphs it declares and the innings to play against them.
//
// Concrete loaders, such as the HCL one, live in separate packages and
// translate their own syntax into a config.Model.
package config
