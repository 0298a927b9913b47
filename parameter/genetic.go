package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPoolSize is the number of candidates in each population
	GAPoolSize = 32

	// GAEliteCount is preserved best performers per generation
	GAEliteCount = 4

	// GAPerturbationRate is probability an offspring is mutated at all (0.0-1.0)
	GAPerturbationRate = 0.2

	// GAPerturbationStrength is the per-gene mutation rate (0.0-1.0)
	GAPerturbationStrength = 0.15

	// GAPerturbationStdDev scales Gaussian noise relative to each variable's range
	GAPerturbationStdDev = 0.10

	// GAMaxIterations caps synchronous evolution runs
	GAMaxIterations = 1000

	// GATournamentSize for selection pressure
	GATournamentSize = 3

	// GACrossoverMixProbability for uniform crossover
	GACrossoverMixProbability = 0.5

	// GACrossoverPoints for n-point crossover
	GACrossoverPoints = 2
)

// Constraint handling
const (
	// ViolationExponent raises each violation distance in the degree metric
	ViolationExponent = 2.0

	// ViolationBoundaryPenalty is added per strict bound violated exactly at its threshold
	ViolationBoundaryPenalty = 0.5

	// InitMaxAttempts caps rejection sampling of the initial pool; 0 is unbounded
	InitMaxAttempts = 0
)

// Random engine
const (
	// DefaultAlgorithm names the generator backend used when none is configured
	DefaultAlgorithm = "pcg"
)
