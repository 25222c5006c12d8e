// Package nuclide provides contaminant transport models for repository
// components.
//
// Each model implements the [Model] interface, defining how contaminant
// mass moves through one component of the disposal system:
//
//   - [DegRate]: releases a fixed fraction of the inventory per time step
//   - [MixedCell]: instantaneous homogeneous mixing over the pore volume
//   - [OneDimPPM]: 1-D semi-infinite advective-dispersive closed form
//
// A model accumulates mass through Absorb, surrenders it through Extract,
// and advances its internal clock through TransportNuclides. Downstream
// components then negotiate boundary exchange through the source term and
// the Dirichlet, Neumann and Cauchy boundary conditions.
//
// Models are not safe for concurrent use. A model is owned by exactly one
// component and driven sequentially by the simulation loop.
package nuclide
