// Package force computes force-directed layouts for small graphs.
//
// The engine is a pure function: given a [Graph] and a [Region] it returns a
// position for every node. The same iterative core drives a planar variant
// (a width×height rectangle, see [Rect]) and a spatial variant (a cube, see
// [Cube]); only the number of axes and the clamp box differ.
//
// # Algorithm
//
// After an initial placement (uniform random unless an [Initializer] is
// supplied), each of the I iterations
//
//  1. pushes every unordered pair of nodes apart with magnitude k_r / d²,
//  2. pulls the endpoints of every resolvable edge together with magnitude
//     d² / k × k_a,
//  3. moves every node by its summed force × T0·cⁱ × step, and
//  4. clamps every axis into [margin, extent − margin].
//
// The optimal distance k is sqrt(area/n) in 2D and cbrt(volume/n) in 3D.
// Unless overridden with [WithRepulsion], k_r defaults to k_a·k³, which makes
// k the rest length of an isolated connected pair. There is no convergence
// test: exactly I iterations run and the geometric cooling is what settles
// the layout.
//
// # Guarantees
//
//   - Every node receives a position; the result has no extra keys.
//   - An empty graph yields an empty mapping; a single node sits at the
//     region center without consuming randomness.
//   - All coordinates lie within [margin, extent − margin].
//   - Edge direction is irrelevant; duplicate edges and self-loops
//     contribute at most once.
//   - Edges naming unknown nodes are skipped, never reported.
//   - Coincident nodes are separated along a random direction and distances
//     are floored, so results are always finite.
//
// Invalid regions, negative iteration counts, out-of-range cooling rates and
// duplicate node ids are rejected before any work starts with a coded
// [github.com/matzehuels/forcegraph/pkg/errors.Error].
//
// # Determinism
//
// Initial placement is random. Pass [WithSeed] to pin the output exactly, or
// [WithRand] to share a caller-owned source. A *rand.Rand is not safe for
// concurrent use; give each concurrent call its own.
//
// # Usage
//
//	g := force.Graph{
//	    Nodes: []force.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
//	    Edges: []force.Edge{{From: "a", To: "b"}},
//	}
//	pos, err := force.Compute(g, force.Rect(800, 600), force.WithSeed(7))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(pos["a"].X(), pos["a"].Y())
//
// Category-biased placement is an optional pre-pass:
//
//	force.Compute(g, force.Rect(800, 600),
//	    force.WithInitializer(force.GroupAnchors(force.SkillAnchors, force.DefaultAnchorRadius, force.DefaultAnchorJitter)))
package force
