package funcs

// NewDefaultRegistry builds a registry with the full built-in catalog. It is
// called once during evaluator construction; the returned registry is
// read-only from then on.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	// Math
	r.Register("sqrt", CategoryMath, Func(sqrtFunc), "Square root: sqrt(x)")
	r.Register("pow", CategoryMath, Func(powFunc), "Power: pow(base, exponent)")
	r.Register("abs", CategoryMath, Func(absFunc), "Absolute value: abs(x)")
	r.Register("log", CategoryMath, Func(logFunc), "Natural logarithm: log(x)")
	r.Register("log10", CategoryMath, Func(log10Func), "Base-10 logarithm: log10(x)")
	r.Register("exp", CategoryMath, Func(expFunc), "Exponential: exp(x) = e^x")
	r.Register("sin", CategoryMath, Func(sinFunc), "Sine: sin(x) in radians")
	r.Register("cos", CategoryMath, Func(cosFunc), "Cosine: cos(x) in radians")
	r.Register("tan", CategoryMath, Func(tanFunc), "Tangent: tan(x) in radians")
	r.Register("asin", CategoryMath, Func(asinFunc), "Arc sine: asin(x) in radians")
	r.Register("acos", CategoryMath, Func(acosFunc), "Arc cosine: acos(x) in radians")
	r.Register("atan", CategoryMath, Func(atanFunc), "Arc tangent: atan(x) in radians")
	r.Register("round", CategoryMath, Func(roundFunc), "Round to nearest integer: round(x)")
	r.Register("floor", CategoryMath, Func(floorFunc), "Floor: floor(x)")
	r.Register("ceil", CategoryMath, Func(ceilFunc), "Ceiling: ceil(x)")
	r.Register("min", CategoryMath, Func(minFunc), "Minimum value: min(x, y, ...)")
	r.Register("max", CategoryMath, Func(maxFunc), "Maximum value: max(x, y, ...)")

	// Logic
	r.Register("if", CategoryLogic, Func(ifFunc), "Conditional: if(condition, trueValue, falseValue)")
	r.Register("and", CategoryLogic, Func(andFunc), "Logical AND: and(x, y, ...) - 1 if all non-zero, else 0")
	r.Register("or", CategoryLogic, Func(orFunc), "Logical OR: or(x, y, ...) - 1 if any non-zero, else 0")
	r.Register("not", CategoryLogic, Func(notFunc), "Logical NOT: not(x) - 1 if x is 0, else 0")

	// Statistical (context-aware)
	r.Register("avg", CategoryStatistical, ContextFunc(avgFunc),
		`Average over a time window: avg("variable", "1h")`)
	r.Register("movingavg", CategoryStatistical, ContextFunc(avgFunc),
		`Moving average over a time window: movingAvg("variable", "15m")`)
	r.Register("sum", CategoryStatistical, ContextFunc(sumFunc),
		`Sum over a time window: sum("variable", "24h")`)
	r.Register("count", CategoryStatistical, ContextFunc(countFunc),
		`Data points in a time window: count("variable", "1h")`)
	r.Register("mintime", CategoryStatistical, ContextFunc(minTimeFunc),
		`Minimum over a time window: minTime("variable", "24h")`)
	r.Register("maxtime", CategoryStatistical, ContextFunc(maxTimeFunc),
		`Maximum over a time window: maxTime("variable", "7d")`)
	r.Register("stddev", CategoryStatistical, ContextFunc(stddevFunc),
		`Standard deviation over a time window: stddev("variable", "1h")`)
	r.Register("rate", CategoryStatistical, ContextFunc(rateFunc),
		`Change per hour over a time window: rate("variable", "1h")`)
	r.Register("percentchange", CategoryStatistical, ContextFunc(percentChangeFunc),
		`Percent change over a time window: percentChange("variable", "1h")`)
	r.Register("median", CategoryStatistical, ContextFunc(medianFunc),
		`Median over a time window: median("variable", "1h")`)

	return r
}
