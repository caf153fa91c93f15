package catalog

// 元の会場図面から採取した俯瞰図ポリゴン。
// 座標は俯瞰図のviewBox論理座標系。

var olympicPolys = []polyDef{
	{"0", "STAGE", "#BCBBC3", "418,158 418,205 566,206 566,331 505,332 505,389 654,389 654,332 592,331 592,206 739,205 739,158"},
	{"1", "STANDING", "#6C69BB", "422,229 422,314 550,314 550,229"},
	{"2", "STANDING", "#6C69BB", "606,229 606,314 734,314 734,229"},
	{"7", "R", "#1B1D65", "351,309 281,378 281,468 297,487 390,397 390,350"},
	{"17", "R", "#1B1D65", "811,309 773,349 772,396 865,487 881,469 881,376"},
	{"18", "S", "#1B1D65", "128,324 128,422 234,422 234,324"},
	{"28", "S", "#1B1D65", "926,324 926,422 1032,422 1032,324"},
	{"3", "STANDING", "#6C69BB", "434,407 435,469 723,469 723,406"},
	{"8", "R", "#1B1D65", "373,437 312,501 388,573 390,451"},
	{"16", "R", "#1B1D65", "790,437 772,453 775,573 850,502"},
	{"19", "S", "#1B1D65", "128,439 128,537 234,537 234,439"},
	{"27", "S", "#1B1D65", "926,439 926,537 1032,537 1032,439"},
	{"0", "CONSOLE", "#BCBBC3", "424,486 424,525 734,525 734,486"},
	{"9", "R", "#1B1D65", "286,504 281,512 281,625 299,642 361,575"},
	{"15", "R", "#1B1D65", "877,504 801,576 864,642 881,626"},
	{"4", "VIP", "#1B1D65", "431,544 431,697 489,698 490,545"},
	{"5", "VIP", "#1B1D65", "508,544 507,697 650,697 650,545"},
	{"6", "VIP", "#1B1D65", "667,544 666,696 725,698 726,544"},
	{"20", "S", "#1B1D65", "128,554 128,671 234,671 234,554"},
	{"26", "S", "#1B1D65", "926,554 926,670 1032,670 1032,555"},
	{"10", "R", "#1B1D65", "377,591 290,674 349,733 390,697 390,606"},
	{"14", "R", "#1B1D65", "786,591 772,607 772,696 813,733 872,673"},
	{"11", "R", "#1B1D65", "364,758 391,788 490,788 490,723 421,722 409,713"},
	{"13", "R", "#1B1D65", "794,758 749,713 737,722 668,722 668,788 767,788"},
	{"12", "R", "#1B1D65", "507,723 507,788 650,788 650,722"},
	{"21", "S", "#1B1D65", "342,794 302,871 325,885 363,811"},
	{"25", "S", "#1B1D65", "815,794 795,812 829,884 833,885 854,875 855,870 820,797"},
	{"22", "S", "#1B1D65", "351,889 487,893 488,815 378,814"},
	{"23", "S", "#1B1D65", "507,816 508,895 650,894 649,815"},
	{"24", "S", "#1B1D65", "669,815 670,893 805,893 779,814"},
}
