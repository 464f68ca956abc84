package i18n

var finnishMessages = map[Code]string{
	CodeLocaleUnknown:      "Kieli {{.Locale}} ei ole saatavilla",
	CodeMessageNotFound:    "Viestiä {{.ID}} ei ole olemassa",
	CodeMessageIDBlank:     "Viestin tunniste puuttuu",
	CodeFormatValueInvalid: "Arvoa {{.Value}} ei voi muotoilla muodossa {{.Mode}}",
}

func init() {
	// Codes without a Finnish template render in English.
	messages := make(map[Code]string, len(englishMessages))
	for code, text := range englishMessages {
		messages[code] = text
	}
	for code, text := range finnishMessages {
		messages[code] = text
	}
	RegisterCatalog("fi", NewCatalog("fi", messages))
}
