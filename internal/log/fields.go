package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldCategory    = "category"
	FieldWorkItem    = "work_item"
	FieldUnits       = "units"
	FieldAmount      = "amount"
	FieldPaymentID   = "payment_id"
	FieldPaymentType = "payment_type"
	FieldBalance     = "balance"
	FieldPeriods     = "periods"
	FieldFingerprint = "fingerprint"
	FieldCacheHits   = "cache_hits"
	FieldCacheMisses = "cache_misses"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentEngine     = "engine"
	ComponentLedger     = "ledger"
	ComponentReconciler = "reconciler"
	ComponentCatalog    = "catalog"
	ComponentCache      = "cache"
	ComponentCLI        = "cli"
)

// Operations defines standard operation names
const (
	OpResolve     = "resolve"
	OpAggregate   = "aggregate"
	OpBreakdown   = "breakdown"
	OpReconcile   = "reconcile"
	OpGenerate    = "generate"
	OpRecalculate = "recalculate"
	OpValidate    = "validate"
	OpRepair      = "repair"
)
