// Package pkg provides the core libraries for keyforge keycap generation.
//
// # Overview
//
// Keyforge builds parametric keycaps as implicit solids and exports them for
// 3D printing. The pkg directory is organized into four main areas:
//
//  1. Geometry - [vec], [kernel]
//  2. Keycap model - [spec], [body], [mount], [homing], [support], [keycap]
//  3. Key sets - [profile], [layout]
//  4. Orchestration - [pipeline], [cache], [preview], [config], [observability]
//
// # Architecture
//
// The typical data flow through keyforge:
//
//	Profile table (embedded TOML) or spec file
//	         ↓
//	    [profile] package (enumerate labelled key specs)
//	         ↓
//	    [keycap] package (blank, edge finish, marks, negatives, stems)
//	         ↓
//	    [pipeline] package (cache lookup, build, export)
//	         ↓
//	    STL/PNG/WebP per key, PDF sheet and assembled STL per set
//
// # Quick Start
//
// Build one key and write its mesh:
//
//	s := spec.Default().With(spec.Units(1.5, 1), spec.MXMount(false))
//	solid, err := keycap.Build(s, keycap.Options{})
//	if err != nil {
//	    return err
//	}
//	err = kernel.WriteSTL("key.stl", solid, kernel.DefaultMeshCells)
//
// Build a whole profile with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	p, _ := profile.Load("glk")
//	batch, err := runner.Batch(ctx, profile.Enumerate(p, false), pipeline.Options{})
//
// # Main Packages
//
// ## Geometry
//
// [vec] - Small 2D and 3D vector types shared by every package.
//
// [kernel] - Implicit solid modelling over sdfx: primitives, lofts, dishes,
// boolean operations, ray casting, and STL meshing.
//
// ## Keycap Model
//
// [spec] - The key spec value (body, size, mount, mark), its derivation
// options, content hash, and TOML loading.
//
// [body] - Lofted blank, scoop dish, scoop coverage check, and edge finish.
//
// [mount] - Choc and MX stems, stabilizer stems, and the negative cut for
// the switch housing.
//
// [homing] - Dot and Windows homing marks.
//
// [support] - Print support legs placed under the skirt, memoised in a bank.
//
// [keycap] - Assembles the complete keycap in a fixed stage order.
//
// ## Key Sets
//
// [profile] - Sculpted row tables, variant enumeration, and labels.
//
// [layout] - Board placement, assembled solids, and the 1:1 PDF sheet.
//
// ## Orchestration
//
// [pipeline] - Cache-aware build and export, the parallel batch runner, and
// run manifests. Used by every CLI command.
//
// [cache] - File, redis, and null artifact caches with content-hash keys.
//
// [preview] - Ray-marched PNG and WebP previews.
//
// [config] - The TOML configuration file and flag resolution.
//
// [observability] - Build and cache hooks.
//
// [vec]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/vec
// [kernel]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/kernel
// [spec]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/spec
// [body]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/body
// [mount]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/mount
// [homing]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/homing
// [support]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/support
// [keycap]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/keycap
// [profile]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/profile
// [layout]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/cache
// [preview]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/preview
// [config]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/keyforge/pkg/observability
package pkg
