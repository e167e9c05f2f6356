// Package i18n holds the multilingual catalog for user-facing messages.
//
// Messages are keyed by (message key, locale) with Dutch as the guaranteed
// fallback for unknown keys and locales. Templates use {param} placeholders;
// the catalog test enumerates every template's parameters so a renamed
// parameter fails at test time instead of at runtime.
package i18n

import "strings"

// Supported locales. Dutch is the fallback.
const (
	LangDutch   = "nl"
	LangFrench  = "fr"
	LangEnglish = "en"
)

// Message keys. Callers use these constants so a typo is a compile error.
const (
	KeyDoctorVerifiedRiziv     = "doctor_verified_riziv"
	KeyDoctorVerifiedNameCity  = "doctor_verified_name_city"
	KeyDoctorVerifiedName      = "doctor_verified_name"
	KeyFraudDetected           = "fraud_detected"
	KeyFraudNameMismatch       = "fraud_name_mismatch"
	KeyFraudReasonNotFound     = "fraud_reason_not_found"
	KeyFraudReasonNameMismatch = "fraud_reason_name_mismatch"

	KeyNoFileUploaded         = "no_file_uploaded"
	KeyFileProcessingError    = "file_processing_error"
	KeyDocumentAnalysisError  = "document_analysis_error"
	KeyDocumentProcessError   = "document_processing_error"
	KeyDatabaseError          = "database_error"
	KeyValidationError        = "validation_error"
	KeyFraudCaseCreationError = "fraud_case_creation_error"

	KeyNotFound = "not_found"
	KeyYes      = "yes"
	KeyNo       = "no"

	KeyValidationSignatureMissing = "validation_signature_missing"
	KeyValidationStartDateFuture  = "validation_start_date_future"
	KeyValidationCertDateFuture   = "validation_cert_date_future"

	KeyDBConfigMissing    = "db_config_missing"
	KeyAnalyzerNotSet     = "analyzer_not_configured"
	KeyConfigurationError = "configuration_error"

	KeyResultApproved      = "result_approved"
	KeyResultRejected      = "result_rejected"
	KeyResultRejectedFraud = "result_rejected_fraud"
)

// Catalog resolves message templates by key and locale.
type Catalog struct {
	messages map[string]map[string]string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{messages: messages}
}

// Get returns the localized message for key, formatted with params.
// Unknown locales fall back to Dutch; unknown keys yield an empty string.
// Placeholders without a matching param are left in place.
func (c *Catalog) Get(key, language string, params map[string]string) string {
	if language != LangDutch && language != LangFrench && language != LangEnglish {
		language = LangDutch
	}
	byLocale, ok := c.messages[key]
	if !ok {
		return ""
	}
	template, ok := byLocale[language]
	if !ok {
		template = byLocale[LangDutch]
	}
	for name, value := range params {
		template = strings.ReplaceAll(template, "{"+name+"}", value)
	}
	return template
}

var messages = map[string]map[string]string{
	// Doctor verification messages.
	KeyDoctorVerifiedRiziv: {
		LangDutch:   "Arts geverifieerd via RIZIV nummer: {riziv}",
		LangFrench:  "Médecin vérifié via numéro INAMI: {riziv}",
		LangEnglish: "Doctor verified via RIZIV number: {riziv}",
	},
	KeyDoctorVerifiedNameCity: {
		LangDutch:   "Arts geverifieerd via naam en stad: {name}",
		LangFrench:  "Médecin vérifié via nom et ville: {name}",
		LangEnglish: "Doctor verified via name and city: {name}",
	},
	KeyDoctorVerifiedName: {
		LangDutch:   "Arts geverifieerd via naam: {name}",
		LangFrench:  "Médecin vérifié via nom: {name}",
		LangEnglish: "Doctor verified via name: {name}",
	},
	KeyFraudDetected: {
		LangDutch:   "⚠️ FRAUDE GEDETECTEERD: Arts niet gevonden in geregistreerde artsendatabase",
		LangFrench:  "⚠️ FRAUDE DÉTECTÉE: Médecin non trouvé dans la base de données des médecins enregistrés",
		LangEnglish: "⚠️ FRAUD DETECTED: Doctor not found in registered doctors database",
	},
	KeyFraudNameMismatch: {
		LangDutch:   "⚠️ FRAUDE GEDETECTEERD: RIZIV nummer bestaat maar naam komt niet overeen (Document: {doc_name}, Database: {db_name})",
		LangFrench:  "⚠️ FRAUDE DÉTECTÉE: Numéro INAMI existe mais le nom ne correspond pas (Document: {doc_name}, Base de données: {db_name})",
		LangEnglish: "⚠️ FRAUD DETECTED: RIZIV number exists but name does not match (Document: {doc_name}, Database: {db_name})",
	},
	KeyFraudReasonNotFound: {
		LangDutch:   "Arts niet gevonden in geregistreerde artsen database",
		LangFrench:  "Médecin non trouvé dans la base de données des médecins enregistrés",
		LangEnglish: "Doctor not found in registered doctors database",
	},
	KeyFraudReasonNameMismatch: {
		LangDutch:   "RIZIV nummer geldig maar arts naam komt niet overeen met database",
		LangFrench:  "Numéro INAMI valide mais le nom du médecin ne correspond pas à la base de données",
		LangEnglish: "RIZIV number valid but doctor name does not match database",
	},

	// Error messages.
	KeyNoFileUploaded: {
		LangDutch:   "Geen bestand geüpload",
		LangFrench:  "Aucun fichier téléchargé",
		LangEnglish: "No file uploaded",
	},
	KeyFileProcessingError: {
		LangDutch:   "Fout bij het verwerken van het bestand",
		LangFrench:  "Erreur lors du traitement du fichier",
		LangEnglish: "Error processing file",
	},
	KeyDocumentAnalysisError: {
		LangDutch:   "Fout bij het analyseren van het document",
		LangFrench:  "Erreur lors de l'analyse du document",
		LangEnglish: "Error analyzing document",
	},
	KeyDocumentProcessError: {
		LangDutch:   "❌ Fout bij het verwerken van het document: {error}",
		LangFrench:  "❌ Erreur lors du traitement du document: {error}",
		LangEnglish: "❌ Error processing document: {error}",
	},
	KeyDatabaseError: {
		LangDutch:   "Database fout: {error}",
		LangFrench:  "Erreur de base de données: {error}",
		LangEnglish: "Database error: {error}",
	},
	KeyValidationError: {
		LangDutch:   "Fout bij validatie: {error}",
		LangFrench:  "Erreur de validation: {error}",
		LangEnglish: "Validation error: {error}",
	},
	KeyFraudCaseCreationError: {
		LangDutch:   "Fout bij aanmaken fraudemelding: {error}",
		LangFrench:  "Erreur lors de la création du cas de fraude: {error}",
		LangEnglish: "Error creating fraud case: {error}",
	},

	// Field labels.
	KeyNotFound: {
		LangDutch:   "Niet gevonden",
		LangFrench:  "Non trouvé",
		LangEnglish: "Not found",
	},
	KeyYes: {
		LangDutch:   "Ja",
		LangFrench:  "Oui",
		LangEnglish: "Yes",
	},
	KeyNo: {
		LangDutch:   "Nee",
		LangFrench:  "Non",
		LangEnglish: "No",
	},

	// Rule violation messages.
	KeyValidationSignatureMissing: {
		LangDutch:   "Er ontbreekt een handtekening van de arts op het document",
		LangFrench:  "La signature du médecin est manquante sur le document",
		LangEnglish: "The doctor's signature is missing on the document",
	},
	KeyValidationStartDateFuture: {
		LangDutch:   "Onmogelijheid startdatum ligt in de toekomst: {date}",
		LangFrench:  "La date de début d'incapacité est dans le futur: {date}",
		LangEnglish: "Incapacity start date is in the future: {date}",
	},
	KeyValidationCertDateFuture: {
		LangDutch:   "Certificaat datum ligt in de toekomst: {date}",
		LangFrench:  "La date du certificat est dans le futur: {date}",
		LangEnglish: "Certificate date is in the future: {date}",
	},

	// Configuration messages.
	KeyDBConfigMissing: {
		LangDutch:   "Database configuratie ontbreekt - kan validatie niet uitvoeren",
		LangFrench:  "Configuration de base de données manquante - impossible d'effectuer la validation",
		LangEnglish: "Database configuration missing - cannot perform validation",
	},
	KeyAnalyzerNotSet: {
		LangDutch:   "Document analyse is niet geconfigureerd. Configureer de omgevingsvariabele UNDERSTANDING_ENDPOINT.",
		LangFrench:  "L'analyse de documents n'est pas configurée. Configurez la variable d'environnement UNDERSTANDING_ENDPOINT.",
		LangEnglish: "Document analysis is not configured. Configure the UNDERSTANDING_ENDPOINT environment variable.",
	},
	KeyConfigurationError: {
		LangDutch:   "Configuratiefout: {error}",
		LangFrench:  "Erreur de configuration: {error}",
		LangEnglish: "Configuration error: {error}",
	},

	// Final verdict messages. The Dutch texts are the externally observed
	// contract; translations follow the same wording.
	KeyResultApproved: {
		LangDutch:   "Uw afwezigheidsattest is geldig en goedgekeurd.",
		LangFrench:  "Votre attestation d'absence est valide et approuvée.",
		LangEnglish: "Your absence certificate is valid and approved.",
	},
	KeyResultRejected: {
		LangDutch:   "Uw afwezigheidsattest kon niet worden goedgekeurd.",
		LangFrench:  "Votre attestation d'absence n'a pas pu être approuvée.",
		LangEnglish: "Your absence certificate could not be approved.",
	},
	KeyResultRejectedFraud: {
		LangDutch:   "Het document is afgekeurd. De arts kon niet worden geverifieerd in onze database van geregistreerde artsen.",
		LangFrench:  "Le document a été rejeté. Le médecin n'a pas pu être vérifié dans notre base de données de médecins enregistrés.",
		LangEnglish: "The document was rejected. The doctor could not be verified in our database of registered doctors.",
	},
}
