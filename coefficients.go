package tranmerc

// nTerms is the number of series terms used by the projection; maxTerms is
// the number the coefficient arrays hold.
const (
	nTerms   = 6
	maxTerms = 8
)

// seriesCoefficients holds the Krüger series coefficients of an ellipsoid.
// a converts conformal to rectifying coordinates (forward), b the reverse.
type seriesCoefficients struct {
	n    float64 // Helmert's n = (a-b)/(a+b)
	a    [maxTerms]float64
	b    [maxTerms]float64
	r4oa float64 // meridional isoperimetric radius over semi-major axis
}

// term is num/den * n^pow.
type term struct {
	num, den float64
	pow      int
}

// aSeries[k] and bSeries[k] give the coefficients of order 2(k+1) as
// polynomials in n, highest power first. Algorithm by C. Rollins, 2006.
var aSeries = [maxTerms][]term{
	{{-18975107, 50803200, 8}, {72161, 387072, 7}, {7891, 37800, 6}, {-127, 288, 5},
		{41, 180, 4}, {5, 16, 3}, {-2, 3, 2}, {1, 2, 1}},
	{{148003883, 174182400, 8}, {13769, 28800, 7}, {-1983433, 1935360, 6}, {281, 630, 5},
		{557, 1440, 4}, {-3, 5, 3}, {13, 48, 2}},
	{{79682431, 79833600, 8}, {-67102379, 29030400, 7}, {167603, 181440, 6}, {15061, 26880, 5},
		{-103, 140, 4}, {61, 240, 3}},
	{{-40176129013, 7664025600, 8}, {97445, 49896, 7}, {6601661, 7257600, 6}, {-179, 168, 5},
		{49561, 161280, 4}},
	{{2605413599, 622702080, 8}, {14644087, 9123840, 7}, {-3418889, 1995840, 6}, {34729, 80640, 5}},
	{{175214326799, 58118860800, 8}, {-30705481, 10378368, 7}, {212378941, 319334400, 6}},
	{{-16759934899, 3113510400, 8}, {1522256789, 1383782400, 7}},
	{{1424729850961, 743921418240, 8}},
}

var bSeries = [maxTerms][]term{
	{{-7944359, 67737600, 8}, {5406467, 38707200, 7}, {-96199, 604800, 6}, {81, 512, 5},
		{1, 360, 4}, {-37, 96, 3}, {2, 3, 2}, {-1, 2, 1}},
	{{-24749483, 348364800, 8}, {-51841, 1209600, 7}, {1118711, 3870720, 6}, {-46, 105, 5},
		{437, 1440, 4}, {-1, 15, 3}, {-1, 48, 2}},
	{{6457463, 17740800, 8}, {-9261899, 58060800, 7}, {-5569, 90720, 6}, {209, 4480, 5},
		{37, 840, 4}, {-17, 480, 3}},
	{{-324154477, 7664025600, 8}, {-466511, 2494800, 7}, {830251, 7257600, 6}, {11, 504, 5},
		{-4397, 161280, 4}},
	{{-22894433, 124540416, 8}, {8005831, 63866880, 7}, {108847, 3991680, 6}, {-4583, 161280, 5}},
	{{2204645983, 12915302400, 8}, {16363163, 518918400, 7}, {-20648693, 638668800, 6}},
	{{497323811, 12454041600, 8}, {-219941297, 5535129600, 7}},
	{{-191773887257, 3719607091200, 8}},
}

// tabulated holds book values for the first nTerms coefficients.
type tabulated struct {
	a, b [nTerms]float64
}

// namedCoefficients is keyed by ellipsoid code. Ellipsoids of identical shape
// share an entry.
var namedCoefficients = buildNamedCoefficients()

func buildNamedCoefficients() map[string]*tabulated {
	m := map[string]*tabulated{}
	for _, e := range []struct {
		codes []string
		t     tabulated
	}{
		{[]string{"AA", "AM"}, tabulated{
			a: [nTerms]float64{8.3474517669594013740e-04, 7.554352936725572895e-07, 1.18487391005135489e-09,
				2.3946872955703565e-12, 5.610633978440270e-15, 1.44858956458553e-17},
			b: [nTerms]float64{-8.3474551646761162264e-04, -5.863630361809676570e-08, -1.65562038746920803e-10,
				-2.1340335537652749e-13, -3.720760760132477e-16, -7.08304328877781e-19},
		}},
		{[]string{"EA", "EB", "EC", "ED", "EE"}, tabulated{
			a: [nTerms]float64{8.3064943111192510534e-04, 7.480375027595025021e-07, 1.16750772278215999e-09,
				2.3479972304395461e-12, 5.474212231879573e-15, 1.40642257446745e-17},
			b: [nTerms]float64{-8.3064976590443772201e-04, -5.805953517555717859e-08, -1.63133251663416522e-10,
				-2.0923797199593389e-13, -3.630200927775259e-16, -6.87666654919219e-19},
		}},
		{[]string{"BN", "BR"}, tabulated{
			a: [nTerms]float64{8.3522527226849818552e-04, 7.563048340614894422e-07, 1.18692075307408346e-09,
				2.4002054791393298e-12, 5.626801597980756e-15, 1.45360057224474e-17},
			b: [nTerms]float64{-8.3522561262703079182e-04, -5.870409978661008580e-08, -1.65848307463131468e-10,
				-2.1389565927064571e-13, -3.731493368666479e-16, -7.10756898071999e-19},
		}},
		{[]string{"KA", "HE", "FA"}, tabulated{
			a: [nTerms]float64{8.3761175713442343106e-04, 7.606346200814720197e-07, 1.19713032035541037e-09,
				2.4277772986483520e-12, 5.707722772225013e-15, 1.47872454335773e-17},
			b: [nTerms]float64{-8.3761210042019176501e-04, -5.904169154078546237e-08, -1.67276212891429215e-10,
				-2.1635549847939549e-13, -3.785212121016612e-16, -7.23053625983667e-19},
		}},
		{[]string{"WD"}, tabulated{
			a: [nTerms]float64{8.3772481044362217923e-04, 7.608400388863560936e-07, 1.19761541904924067e-09,
				2.4290893081322466e-12, 5.711579173743133e-15, 1.47992364667635e-17},
			b: [nTerms]float64{-8.3772515386847544554e-04, -5.905770828762463028e-08, -1.67344058948464124e-10,
				-2.1647255130188214e-13, -3.787772179729998e-16, -7.23640523525528e-19},
		}},
		{[]string{"WE"}, tabulated{
			a: [nTerms]float64{8.3773182062446983032e-04, 7.608527773572489156e-07, 1.19764550324249210e-09,
				2.4291706803973131e-12, 5.711818369154105e-15, 1.47999802705262e-17},
			b: [nTerms]float64{-8.3773216405794867707e-04, -5.905870152220365181e-08, -1.67348266534382493e-10,
				-2.1647981104903862e-13, -3.787930968839601e-16, -7.23676928796690e-19},
		}},
		{[]string{"RF"}, tabulated{
			a: [nTerms]float64{8.3773182472855134012e-04, 7.608527848149655006e-07, 1.19764552085530681e-09,
				2.4291707280369697e-12, 5.711818509192422e-15, 1.47999807059922e-17},
			b: [nTerms]float64{-8.3773216816203523672e-04, -5.905870210369121594e-08, -1.67348268997717031e-10,
				-2.1647981529928124e-13, -3.787931061803592e-16, -7.23676950110361e-19},
		}},
		{[]string{"SA", "AN"}, tabulated{
			a: [nTerms]float64{8.3775209887947194075e-04, 7.608896263599627157e-07, 1.19773253021831769e-09,
				2.4294060763606098e-12, 5.712510331613028e-15, 1.48021320370432e-17},
			b: [nTerms]float64{-8.3775244233790270051e-04, -5.906157468586898015e-08, -1.67360438158764851e-10,
				-2.1650081225048788e-13, -3.788390325953455e-16, -7.23782246429908e-19},
		}},
		{[]string{"ID"}, tabulated{
			a: [nTerms]float64{8.3776052087969078729e-04, 7.609049308144604484e-07, 1.19776867565343872e-09,
				2.4295038464530901e-12, 5.712797738386076e-15, 1.48030257891140e-17},
			b: [nTerms]float64{-8.3776086434848497443e-04, -5.906276799395007586e-08, -1.67365493472742884e-10,
				-2.1650953495573773e-13, -3.788581120060625e-16, -7.23825990889693e-19},
		}},
		{[]string{"IN", "HO"}, tabulated{
			a: [nTerms]float64{8.4127599100356448089e-04, 7.673066923431950296e-07, 1.21291995794281190e-09,
				2.4705731165688123e-12, 5.833780550286833e-15, 1.51800420867708e-17},
			b: [nTerms]float64{-8.4127633881644851945e-04, -5.956193574768780571e-08, -1.69484573979154433e-10,
				-2.2017363465021880e-13, -3.868896221495780e-16, -7.42279219864412e-19},
		}},
		{[]string{"WO"}, tabulated{
			a: [nTerms]float64{8.4411652150600103279e-04, 7.724989750172583427e-07, 1.22525529789972041e-09,
				2.5041361775549209e-12, 5.933026083631383e-15, 1.54904908794521e-17},
			b: [nTerms]float64{-8.4411687285559594196e-04, -5.996681687064322548e-08, -1.71209836918814857e-10,
				-2.2316811233502163e-13, -3.934782433323038e-16, -7.57474665717687e-19},
		}},
		{[]string{"CC"}, tabulated{
			a: [nTerms]float64{8.4703742793654652315e-04, 7.778564517658115212e-07, 1.23802665917879731e-09,
				2.5390045684252928e-12, 6.036484469753319e-15, 1.58152259295850e-17},
			b: [nTerms]float64{-8.4703778294785813001e-04, -6.038459874600183555e-08, -1.72996106059227725e-10,
				-2.2627911073545072e-13, -4.003466873888566e-16, -7.73369749524777e-19},
		}},
		{[]string{"CG"}, tabulated{
			a: [nTerms]float64{8.5140099460764136776e-04, 7.858945456038187774e-07, 1.25727085106103462e-09,
				2.5917718627340128e-12, 6.193726879043722e-15, 1.63109098395549e-17},
			b: [nTerms]float64{-8.5140135513650084564e-04, -6.101145475063033499e-08, -1.75687742410879760e-10,
				-2.3098718484594067e-13, -4.107860472919190e-16, -7.97633133452512e-19},
		}},
		{[]string{"CD"}, tabulated{
			a: [nTerms]float64{8.5140395445291970541e-04, 7.859000119464140978e-07, 1.25728397182445579e-09,
				2.5918079321459932e-12, 6.193834639108787e-15, 1.63112504092335e-17},
			b: [nTerms]float64{-8.5140431498554106268e-04, -6.101188106187092184e-08, -1.75689577596504470e-10,
				-2.3099040312610703e-13, -4.107932016207395e-16, -7.97649804397335e-19},
		}},
	} {
		t := e.t
		for _, code := range e.codes {
			m[code] = &t
		}
	}
	return m
}

// generateCoefficients returns the series coefficients for an ellipsoid.
// The result depends only on the ellipsoid shape. Codes with book values use
// them; any other code gets coefficients computed from Helmert's n.
func generateCoefficients(invFlattening float64, ellipsoidCode string) seriesCoefficients {
	var c seriesCoefficients
	c.n = 1.0 / (2*invFlattening - 1.0)

	// pow[i] = n^i
	var pow [11]float64
	pow[0] = 1
	for i := 1; i < len(pow); i++ {
		pow[i] = pow[i-1] * c.n
	}

	if t, ok := namedCoefficients[ellipsoidCode]; ok {
		copy(c.a[:], t.a[:])
		copy(c.b[:], t.b[:])
	} else {
		for k := 0; k < maxTerms; k++ {
			c.a[k] = evalSeries(aSeries[k], &pow)
			c.b[k] = evalSeries(bSeries[k], &pow)
		}
	}

	r4 := 49*pow[10]/65536.0 + 25*pow[8]/16384.0 + pow[6]/256.0 + pow[4]/64.0 + pow[2]/4 + 1
	c.r4oa = r4 / (1 + c.n)
	return c
}

func evalSeries(terms []term, pow *[11]float64) float64 {
	coeff := 0.0
	for _, t := range terms {
		coeff += t.num * pow[t.pow] / t.den
	}
	return coeff
}
