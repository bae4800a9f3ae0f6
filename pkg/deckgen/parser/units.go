// Package parser loads deck inputs: the slide description, workbook data
// sources and presentation templates.
package parser

// EMUPerInch is the number of EMUs (English Metric Units) per inch.
// PowerPoint stores every offset and extent in EMU.
const EMUPerInch = 914400

// EMUPerPixel is the number of EMUs per pixel at 96 DPI (914400 / 96).
const EMUPerPixel = 9525

// InchesToEMU converts inches to EMU, rounding to the nearest unit.
func InchesToEMU(in float64) int64 {
	if in < 0 {
		return -int64(-in*EMUPerInch + 0.5)
	}
	return int64(in*EMUPerInch + 0.5)
}

// EMUToInches converts EMU to inches.
func EMUToInches(emu int64) float64 {
	return float64(emu) / EMUPerInch
}

// InchesToPixels converts inches to whole pixels at the given resolution.
// A non-positive dpi means 96.
func InchesToPixels(in, dpi float64) int {
	if dpi <= 0 {
		dpi = EMUPerInch / EMUPerPixel
	}
	return int(in*dpi + 0.5)
}
