package service

import "strings"

// wilayas is the fixed list of the 58 Algerian wilayas offered by the
// checkout form, in official numbering order.
var wilayas = []string{
	"Adrar", "Chlef", "Laghouat", "Oum El Bouaghi", "Batna", "Béjaïa",
	"Biskra", "Béchar", "Blida", "Bouira", "Tamanrasset", "Tébessa",
	"Tlemcen", "Tiaret", "Tizi Ouzou", "Alger", "Djelfa", "Jijel",
	"Sétif", "Saïda", "Skikda", "Sidi Bel Abbès", "Annaba", "Guelma",
	"Constantine", "Médéa", "Mostaganem", "M'Sila", "Mascara", "Ouargla",
	"Oran", "El Bayadh", "Illizi", "Bordj Bou Arréridj", "Boumerdès",
	"El Tarf", "Tindouf", "Tissemsilt", "El Oued", "Khenchela",
	"Souk Ahras", "Tipaza", "Mila", "Aïn Defla", "Naâma",
	"Aïn Témouchent", "Ghardaïa", "Relizane", "Timimoun",
	"Bordj Badji Mokhtar", "Ouled Djellal", "Béni Abbès", "In Salah",
	"In Guezzam", "Touggourt", "Djanet", "El M'Ghair", "El Meniaa",
}

// Wilayas returns the selectable wilaya list for the checkout form.
func Wilayas() []string {
	out := make([]string, len(wilayas))
	copy(out, wilayas)
	return out
}

// IsValidWilaya reports whether the trimmed name matches one of the 58
// wilayas, ignoring case.
func IsValidWilaya(name string) bool {
	trimmed := strings.TrimSpace(name)
	for _, w := range wilayas {
		if strings.EqualFold(w, trimmed) {
			return true
		}
	}
	return false
}
