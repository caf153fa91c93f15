package catalog

// 元の会場図面から採取した俯瞰図ポリゴン。
// 座標は俯瞰図のviewBox論理座標系。

var inspirePolys = []polyDef{
	{"48", "S", "#FFCC10", "333,64 225,64 176,117 194,136 210,124 235,150 257,132 306,132 306,87 332,85"},
	{"49", "S", "#FFCC10", "344,64 344,132 404,132 404,86 425,84 426,64"},
	{"50", "S", "#FFCC10", "441,63 441,132 528,132 527,64"},
	{"51", "S", "#FFCC10", "544,64 544,83 566,86 566,132 626,132 626,64"},
	{"52", "S", "#FFCC10", "633,64 634,85 661,87 661,132 708,132 722,142 754,109 768,123 783,112 736,64"},
	{"53", "S", "#FFCC10", "790,120 746,169 799,218 842,168"},
	{"47", "S", "#FFCC10", "165,126 129,166 180,207 213,172"},
	{"28", "R", "#4CA0FF", "443,142 443,195 529,195 528,141"},
	{"29", "R", "#4CA0FF", "540,142 540,195 623,194 622,141"},
	{"30", "R", "#4CA0FF", "634,141 634,195 681,195 703,141"},
	{"26", "R", "#4CA0FF", "266,143 287,195 337,195 336,142"},
	{"27", "R", "#4CA0FF", "347,143 348,195 432,195 431,142"},
	{"25", "R", "#4CA0FF", "257,150 154,250 204,270 277,203"},
	{"31", "R", "#4CA0FF", "717,158 703,194 776,268 814,253"},
	{"46", "S", "#FFCC10", "121,175 71,223 70,334 137,334 137,250 154,230 129,205 140,191"},
	{"54", "S", "#FFCC10", "850,178 838,193 854,210 823,242 829,252 829,332 896,334 897,221"},
	{"6", "VIP", "#68F237", "292,206 309,247 314,260 325,288 336,291 337,206"},
	{"7", "VIP", "#68F237", "348,206 347,290 431,291 432,207"},
	{"8", "VIP", "#68F237", "442,207 442,290 529,290 528,206"},
	{"9", "VIP", "#68F237", "541,206 540,290 623,290 623,207"},
	{"10", "VIP", "#68F237", "674,206 633,207 633,238 635,291 652,260 663,233"},
	{"5", "VIP", "#68F237", "281,213 219,276 305,310 318,295"},
	{"11", "VIP", "#68F237", "762,272 721,234 678,302 689,305"},
	{"44", "R", "#4CA0FF", "150,263 150,357 202,357 202,283"},
	{"32", "R", "#4CA0FF", "821,263 766,284 767,360 820,359"},
	{"24", "VIP", "#68F237", "216,289 217,358 300,357 299,321"},
	{"12", "VIP", "#68F237", "753,291 667,324 667,359 752,360"},
	{"0", "CONSOLE", "#1A1A1A", "327,304 320,311 320,519 338,525 338,305"},
	{"1", "STANDING", "#FE4AB9", "349,401 357,401 453,304 350,304"},
	{"2", "STANDING", "#FE4AB9", "486,304 555,377 615,377 614,304"},
	{"0", "STAGE", "#4D4D4D", "464,326 376,417 467,505 526,446 516,430 593,430 593,400 515,400 526,385"},
	{"45", "S", "#FFCC10", "71,345 70,460 137,460 137,368 92,367 90,345"},
	{"55", "S", "#FFCC10", "873,344 871,367 829,368 829,470 871,471 873,495 896,496 897,344"},
	{"43", "R", "#4CA0FF", "150,369 150,460 202,460 202,369"},
	{"23", "VIP", "#68F237", "300,369 216,369 216,460 300,460"},
	{"13", "VIP", "#68F237", "668,370 667,465 753,465 753,371"},
	{"33", "R", "#4CA0FF", "767,370 766,465 820,465 820,371"},
	{"3", "STANDING", "#FE4AB9", "349,428 349,525 453,525 358,429"},
	{"4", "STANDING", "#FE4AB9", "616,454 554,453 486,525 615,525"},
	{"22", "VIP", "#68F237", "216,471 216,543 300,508 298,471"},
	{"42", "R", "#4CA0FF", "202,472 150,472 150,571 202,550"},
	{"14", "VIP", "#68F237", "667,476 667,513 753,546 752,476"},
	{"34", "R", "#4CA0FF", "767,476 766,553 820,574 820,476"},
	{"56", "S", "#FFCC10", "897,503 829,503 829,581 806,607 853,651 897,609"},
	{"21", "VIP", "#68F237", "306,520 221,558 272,609 312,532"},
	{"15", "VIP", "#68F237", "663,523 699,605 748,559"},
	{"20", "VIP", "#68F237", "337,541 326,541 312,572 305,588 290,625 337,625 337,596 337,579 337,571"},
	{"19", "VIP", "#68F237", "347,541 348,625 432,624 432,541"},
	{"18", "VIP", "#68F237", "442,542 442,624 529,624 529,541"},
	{"17", "VIP", "#68F237", "540,541 540,624 623,624 623,542"},
	{"16", "VIP", "#68F237", "634,541 633,624 674,625 660,590 651,570 639,542"},
	{"35", "R", "#4CA0FF", "812,583 762,563 697,628 720,676"},
	{"41", "R", "#4CA0FF", "156,587 247,680 271,628 207,568"},
	{"57", "S", "#FFCC10", "795,616 772,642 786,655 795,664 820,687 844,663 844,659 824,641"},
	{"40", "R", "#4CA0FF", "285,635 254,705 337,705 337,636"},
	{"39", "R", "#4CA0FF", "348,636 348,705 431,706 432,636"},
	{"38", "R", "#4CA0FF", "443,636 443,705 529,705 529,636"},
	{"37", "R", "#4CA0FF", "540,636 540,705 623,704 621,635"},
	{"36", "R", "#4CA0FF", "634,636 634,705 671,705 704,685 680,636"},
}
