// Package chart turns datasets into renderer-agnostic scenes.
//
// Every chart kind is a plain options struct implementing [Chart]. Calling
// [Chart.Build] with the available pixel size recomputes scales and geometry
// from scratch and returns a [Scene]: the shape primitives in absolute
// coordinates, the axes and grid, and a [tooltip.Locator] that maps pointer
// positions back to the rows of the scene.
//
// # Data quality
//
// Builders never fail because of the data itself. Empty datasets yield an
// empty scene, missing or non-finite values read as zero, and degenerate
// domains collapse to the middle of their range. Structural problems in the
// configuration, such as a missing accessor, a cyclic flow or a non-square
// chord matrix, are reported as coded errors from [errors].
//
// # Sizes
//
// Each kind has a minimum size below which it renders nothing; the scene is
// then marked [Scene.Suppressed]. Kinds that need more room than
// [DefaultMinSize] implement [Sizer].
//
// [errors]: github.com/matzehuels/waffle/pkg/errors
package chart
