package holiday

import "github.com/smokyabdulrahman/prayer-planner/internal/hijri"

// catalog holds the recurring Hijri anchors. Date and DaysUntil are filled in
// by the registry.
var catalog = []Holiday{
	{
		Name: "Islamic New Year", NameAr: "رأس السنة الهجرية",
		HijriDay: 1, HijriMonth: hijri.Muharram, Type: TypeMajor,
		Description: "The first day of Muharram marks the start of the Hijri year.",
		RecommendedActions: []string{
			"Reflect on the past year and set intentions for the new one",
			"Make du'a for a blessed year",
		},
	},
	{
		Name: "Ashura", NameAr: "عاشوراء",
		HijriDay: 10, HijriMonth: hijri.Muharram, Type: TypeMinor,
		Description: "The tenth of Muharram, the day Musa and his people were saved.",
		RecommendedActions: []string{
			"Fast on the 9th and 10th of Muharram",
			"Give charity",
		},
	},
	{
		Name: "Mawlid an-Nabi", NameAr: "المولد النبوي",
		HijriDay: 12, HijriMonth: hijri.RabiAlAwwal, Type: TypeObservance,
		Description: "Commemorates the birth of the Prophet.",
		RecommendedActions: []string{
			"Read the Seerah",
			"Send salawat upon the Prophet",
		},
	},
	{
		Name: "Isra and Mi'raj", NameAr: "الإسراء والمعراج",
		HijriDay: 27, HijriMonth: hijri.Rajab, Type: TypeObservance,
		Description: "The night journey to Jerusalem and the ascension, when the five daily prayers were prescribed.",
		RecommendedActions: []string{
			"Reflect on the importance of salah",
			"Pray voluntary prayers at night",
		},
	},
	{
		Name: "Mid-Sha'ban", NameAr: "ليلة النصف من شعبان",
		HijriDay: 15, HijriMonth: hijri.Shaban, Type: TypeObservance,
		Description: "The night of the middle of Sha'ban, a time for forgiveness before Ramadan.",
		RecommendedActions: []string{
			"Seek forgiveness",
			"Begin preparing for Ramadan",
		},
	},
	{
		Name: "Start of Ramadan", NameAr: "بداية رمضان",
		HijriDay: 1, HijriMonth: hijri.Ramadan, Type: TypeMajor,
		Description: "The first day of the month of fasting.",
		RecommendedActions: []string{
			"Set a Quran reading plan for the month",
			"Plan suhoor and iftar around your schedule",
			"Lighten your meeting load during fasting hours",
		},
	},
	{
		Name: "Laylat al-Qadr", NameAr: "ليلة القدر",
		HijriDay: 27, HijriMonth: hijri.Ramadan, Type: TypeMajor,
		Description: "The Night of Decree, better than a thousand months. Sought in the odd nights of the last ten days.",
		RecommendedActions: []string{
			"Spend the night in prayer and Quran recitation",
			"Make abundant du'a",
			"Keep the evening free of commitments",
		},
	},
	{
		Name: "Eid al-Fitr", NameAr: "عيد الفطر",
		HijriDay: 1, HijriMonth: hijri.Shawwal, Type: TypeMajor,
		Description: "The festival marking the end of Ramadan.",
		RecommendedActions: []string{
			"Pay Zakat al-Fitr before the Eid prayer",
			"Attend the Eid prayer",
			"Visit family and friends",
		},
	},
	{
		Name: "Day of Arafah", NameAr: "يوم عرفة",
		HijriDay: 9, HijriMonth: hijri.DhuAlHijjah, Type: TypeMajor,
		Description: "The day pilgrims stand at Arafah, the height of Hajj.",
		RecommendedActions: []string{
			"Fast if you are not performing Hajj",
			"Make abundant du'a",
		},
	},
	{
		Name: "Eid al-Adha", NameAr: "عيد الأضحى",
		HijriDay: 10, HijriMonth: hijri.DhuAlHijjah, Type: TypeMajor,
		Description: "The festival of sacrifice, commemorating Ibrahim's devotion.",
		RecommendedActions: []string{
			"Attend the Eid prayer",
			"Offer the Udhiyah sacrifice",
			"Share meat with family, neighbours and the poor",
		},
	},
}

// sacredSignificance describes each of the four sacred months.
var sacredSignificance = map[int]string{
	hijri.Muharram:    "Muharram is the month of Allah and opens the Hijri year; fasting in it is the best after Ramadan.",
	hijri.Rajab:       "Rajab is a sacred month that begins the spiritual run-up to Ramadan.",
	hijri.DhuAlQidah:  "Dhu al-Qi'dah is a sacred month of peace in which the pilgrims travel to Hajj.",
	hijri.DhuAlHijjah: "Dhu al-Hijjah is the month of Hajj; its first ten days are the best days of the year.",
}

// monthObservances lists what each Hijri month is known for.
var monthObservances = map[int][]string{
	hijri.Muharram:      {"Fasting on Ashura (10 Muharram) and the day before", "Voluntary fasting through the month"},
	hijri.Safar:         {"Regular worship and dhikr"},
	hijri.RabiAlAwwal:   {"Learning the Seerah of the Prophet"},
	hijri.RabiAlThani:   {"Regular worship and dhikr"},
	hijri.JumadaAlAwwal: {"Regular worship and dhikr"},
	hijri.JumadaAlThani: {"Preparing the heart before the sacred month of Rajab"},
	hijri.Rajab:         {"Isra and Mi'raj (27 Rajab)", "Increasing voluntary worship"},
	hijri.Shaban:        {"Fasting often, as the Prophet did in Sha'ban", "Mid-Sha'ban (15 Sha'ban)", "Making up missed Ramadan fasts"},
	hijri.Ramadan:       {"Fasting from Fajr to Maghrib", "Taraweeh prayers", "Seeking Laylat al-Qadr in the last ten nights", "Completing the Quran"},
	hijri.Shawwal:       {"Eid al-Fitr (1 Shawwal)", "Six days of voluntary fasting"},
	hijri.DhuAlQidah:    {"Preparing for Hajj", "Avoiding conflict in a sacred month"},
	hijri.DhuAlHijjah:   {"The first ten days of Dhu al-Hijjah", "Day of Arafah (9 Dhu al-Hijjah)", "Eid al-Adha and Udhiyah"},
}

// monthlyWorship, monthlyCharity and monthlyFasting are the per-month
// suggestion tables behind MonthlyRecommendations.
var monthlyWorship = map[int][]string{
	hijri.Muharram:    {"Renew your intentions for the new year"},
	hijri.RabiAlAwwal: {"Send abundant salawat upon the Prophet"},
	hijri.Rajab:       {"Increase voluntary night prayer"},
	hijri.Shaban:      {"Build a daily Quran habit before Ramadan"},
	hijri.Ramadan:     {"Pray Taraweeh", "Aim to complete the Quran", "Perform i'tikaf in the last ten nights if you can"},
	hijri.Shawwal:     {"Keep one Ramadan habit going"},
	hijri.DhuAlHijjah: {"Recite takbir through the first ten days"},
}

var monthlyCharity = map[int][]string{
	hijri.Muharram:    {"Give charity on Ashura"},
	hijri.Ramadan:     {"Sponsor an iftar", "Pay your zakat"},
	hijri.Shawwal:     {"Pay Zakat al-Fitr before the Eid prayer"},
	hijri.DhuAlHijjah: {"Offer or sponsor an Udhiyah"},
}

var monthlyFasting = map[int][]string{
	hijri.Muharram:    {"Fast the 9th and 10th of Muharram"},
	hijri.Shaban:      {"Fast frequently to prepare for Ramadan"},
	hijri.Ramadan:     {"Fast every day of the month"},
	hijri.Shawwal:     {"Fast six days of Shawwal"},
	hijri.DhuAlHijjah: {"Fast the Day of Arafah"},
}

// generic advice applies in every month.
var (
	genericWorship = []string{"Pray the five daily prayers on time", "Read a portion of Quran daily"}
	genericCharity = []string{"Give a small charity every week"}
	genericFasting = []string{"Fast Mondays and Thursdays", "Fast the White Days (13th, 14th and 15th)"}
	sacredAdvice   = "Good deeds weigh more in a sacred month; avoid wrongdoing and disputes"
)
