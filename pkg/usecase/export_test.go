package usecase

// Export internal calculation steps for white-box testing
var (
	DomainBusFactor        = domainBusFactor
	AssembleSPOFs          = assembleSPOFs
	OverallBusFactor       = overallBusFactor
	DistributionScore      = distributionScore
	GraphCacheKey          = graphCacheKey
	ApplyGraphDefaults     = GraphOptions.withDefaults
	ApplyBusFactorDefaults = BusFactorOptions.withDefaults
)
