package rng

// Streams holds the independent random streams of one run. Each consumer
// draws from its own stream so that, for example, changing how many parents
// are sampled does not perturb obstacle spawning.
type Streams struct {
	World     *Source // obstacle and cloud spawning
	Select    *Source // parent sampling from the mating pool
	Crossover *Source // per-gene parent choice
	Gate      *Source // whether a gene mutates
	Deviation *Source // size of each mutation
	Shuffle   *Source // mating pool ordering
}

// NewStreams derives every stream from one master seed.
func NewStreams(seed int64) *Streams {
	return &Streams{
		World:     Derive(seed, "world"),
		Select:    Derive(seed, "select"),
		Crossover: Derive(seed, "parents"),
		Gate:      Derive(seed, "mutation"),
		Deviation: Derive(seed, "mutationDeviance"),
		Shuffle:   Derive(seed, "shuffle"),
	}
}
