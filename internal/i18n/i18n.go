// Package i18n provides the bilingual (English/Arabic) message table for
// user-facing strings. The locale is an explicit value threaded through
// request handling; there is no ambient global language state.
package i18n

import "strings"

// Locale identifies a supported storefront language.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

// Parse maps a lang query parameter or Accept-Language prefix to a Locale,
// defaulting to English.
func Parse(s string) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "ar" || strings.HasPrefix(s, "ar-") {
		return LocaleAR
	}
	return LocaleEN
}

// messages is the static translation table keyed by locale then message key.
var messages = map[Locale]map[string]string{
	LocaleEN: {
		"full_name_required":  "Please enter your full name",
		"invalid_email":       "Please enter a valid email address",
		"invalid_phone":       "Please enter a valid phone number",
		"emirate_required":    "Please select an emirate",
		"city_required":       "Please select a city",
		"city_not_in_emirate": "The selected city does not belong to the chosen emirate",
		"complete_address":    "Please enter your complete address",
		"empty_cart":          "Your cart is empty",
		"invalid_quantity":    "Quantity must be at least one",
		"product_not_found":   "Product not found",
		"variation_not_found": "The selected combination is not available",
		"insufficient_stock":  "Not enough stock for one or more items",
		"payment_failed":      "Payment could not be completed",
		"order_failed":        "Order creation failed, please contact support",
	},
	LocaleAR: {
		"full_name_required":  "يرجى إدخال الاسم الكامل",
		"invalid_email":       "يرجى إدخال بريد إلكتروني صحيح",
		"invalid_phone":       "يرجى إدخال رقم هاتف صحيح",
		"emirate_required":    "يرجى اختيار الإمارة",
		"city_required":       "يرجى اختيار المدينة",
		"city_not_in_emirate": "المدينة المختارة لا تتبع الإمارة المحددة",
		"complete_address":    "يرجى إدخال العنوان الكامل",
		"empty_cart":          "سلة التسوق فارغة",
		"invalid_quantity":    "يجب أن تكون الكمية واحدًا على الأقل",
		"product_not_found":   "المنتج غير موجود",
		"variation_not_found": "التشكيلة المختارة غير متوفرة",
		"insufficient_stock":  "الكمية المطلوبة غير متوفرة في المخزون",
		"payment_failed":      "تعذر إتمام عملية الدفع",
		"order_failed":        "فشل إنشاء الطلب، يرجى التواصل مع الدعم",
	},
}

// T translates a message key for the given locale. Unknown keys fall back
// to English, then to the key itself so missing translations stay visible.
func T(loc Locale, key string) string {
	if m, ok := messages[loc]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[LocaleEN][key]; ok {
		return s
	}
	return key
}

// ContentByLang picks the Arabic variant when the locale is Arabic and a
// translation exists, otherwise the English one.
func ContentByLang(en, ar string, loc Locale) string {
	if loc == LocaleAR && ar != "" {
		return ar
	}
	return en
}

// Localize translates every value of a field-error map.
func Localize(loc Locale, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for field, key := range fields {
		out[field] = T(loc, key)
	}
	return out
}
