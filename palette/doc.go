// Package palette resolves host data into a [lang.Context].
//
// A palette document is YAML (or JSON) with three top-level keys:
//
//	siteColors:
//	  - {name: color_11, value: "#FFFFFF", reference: color-1}
//	siteTextPresets:
//	  Body-M:
//	    value: "font:normal normal normal 17px/1.4em raleway,sans-serif;"
//	styleParams:
//	  numbers: {gap: 4}
//	  colors:
//	    accent: {value: red}
//	  fonts:
//	    title: {family: raleway, size: 24, style: {bold: true}}
//	    label: {value: 100px, fontStyleParam: false}
//
// Site colors are addressable by reference and by name. Style-param colors
// are normalized to rgb() or rgba() text. Font params without a family are
// ignored, and entries marked fontStyleParam: false are plain strings.
package palette
