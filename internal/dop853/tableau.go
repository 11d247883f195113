package dop853

// Dormand-Prince 8(5,3) coefficients (Hairer, Norsett & Wanner,
// "Solving Ordinary Differential Equations I", DOP853). Twelve live
// stages; the b row yields the order-8 solution, the bhh row the
// order-3 embedded estimate and the er row the order-5 one.
var (
	c2  = 0.526001519587677318785587544488e-01
	c3  = 0.789002279381515978178381316732e-01
	c4  = 0.118350341907227396726757197510e+00
	c5  = 0.281649658092772603273242802490e+00
	c6  = 0.333333333333333333333333333333e+00
	c7  = 0.25e+00
	c8  = 0.307692307692307692307692307692e+00
	c9  = 0.651282051282051282051282051282e+00
	c10 = 0.6e+00
	c11 = 0.857142857142857142857142857142e+00

	b1  = 5.42937341165687622380535766363e-2
	b6  = 4.45031289275240888144113950566e0
	b7  = 1.89151789931450038304281599044e0
	b8  = -5.8012039600105847814672114227e0
	b9  = 3.1116436695781989440891606237e-1
	b10 = -1.52160949662516078556178806805e-1
	b11 = 2.01365400804030348374776537501e-1
	b12 = 4.47106157277725905176885569043e-2

	bhh1 = 0.244094488188976377952755905512e+00
	bhh2 = 0.733846688281611857341361741547e+00
	bhh3 = 0.220588235294117647058823529412e-01

	er1  = 0.1312004499419488073250102996e-01
	er6  = -0.1225156446376204440720569753e+01
	er7  = -0.4957589496572501915214079952e+00
	er8  = 0.1664377182454986536961530415e+01
	er9  = -0.3503288487499736816886487290e+00
	er10 = 0.3341791187130174790297318841e+00
	er11 = 0.8192320648511571246570742613e-01
	er12 = -0.2235530786388629525884427845e-01

	a21 = 5.26001519587677318785587544488e-2

	a31 = 1.97250569845378994544595329183e-2
	a32 = 5.91751709536136983633785987549e-2

	a41 = 2.95875854768068491816892993775e-2
	a43 = 8.87627564304205475450678981324e-2

	a51 = 2.41365134159266685502369798665e-1
	a53 = -8.84549479328286085344864962717e-1
	a54 = 9.24834003261792003115737966543e-1

	a61 = 3.7037037037037037037037037037e-2
	a64 = 1.70828608729473871279604482173e-1
	a65 = 1.25467687566822425016691814123e-1

	a71 = 3.7109375e-2
	a74 = 1.70252211019544039314978060272e-1
	a75 = 6.02165389804559606850219397283e-2
	a76 = -1.7578125e-2

	a81 = 3.70920001185047927108779319836e-2
	a84 = 1.70383925712239993810214054705e-1
	a85 = 1.07262030446373284651809199168e-1
	a86 = -1.53194377486244017527936158236e-2
	a87 = 8.27378916381402288758473766002e-3

	a91 = 6.24110958716075717114429577812e-1
	a94 = -3.36089262944694129406857109825e0
	a95 = -8.68219346841726006818189891453e-1
	a96 = 2.75920996994467083049415600797e1
	a97 = 2.01540675504778934086186788979e1
	a98 = -4.34898841810699588477366255144e1

	a101 = 4.77662536438264365890433908527e-1
	a104 = -2.48811461997166764192642586468e0
	a105 = -5.90290826836842996371446475743e-1
	a106 = 2.12300514481811942347288949897e1
	a107 = 1.52792336328824235832596922938e1
	a108 = -3.32882109689848629194453265587e1
	a109 = -2.03312017085086261358222928593e-2

	a111  = -9.3714243008598732571704021658e-1
	a114  = 5.18637242884406370830023853209e0
	a115  = 1.09143734899672957818500254654e0
	a116  = -8.14978701074692612513997267357e0
	a117  = -1.85200656599969598641566180701e1
	a118  = 2.27394870993505042818970056734e1
	a119  = 2.49360555267965238987089396762e0
	a1110 = -3.0467644718982195003823669022e0

	a121  = 2.27331014751653820792359768449e0
	a124  = -1.05344954667372501984066689879e1
	a125  = -2.00087205822486249909675718444e0
	a126  = -1.79589318631187989172765950534e1
	a127  = 2.79488845294199600508499808837e1
	a128  = -2.85899827713502369474065508674e0
	a129  = -8.87285693353062954433549289258e0
	a1210 = 1.23605671757943030647266201528e1
	a1211 = 6.43392746015763530355970484046e-1
)
