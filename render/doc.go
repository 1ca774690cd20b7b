// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package render formats routes, favourites and the profile for the terminal,
// using the light or dark palette chosen by the theme flag.
package render
