package ontology

// DefaultDocument returns the built-in ontology tables. Entry order is
// significant: it breaks ties between equally long partial synonym matches.
func DefaultDocument() Document {
	return Document{
		Critical: []string{
			"emergency_care",
			"maternity_delivery",
			"general_surgery",
			"blood_transfusion",
			"pediatric_care",
			"intensive_care_unit",
			"pharmacy",
			"laboratory_services",
			"ambulance_service",
		},
		Capabilities: []EntrySpec{
			// Emergency & critical care
			{Name: "emergency_care", Description: "24/7 Emergency Medical Services",
				Synonyms:     []string{"emergency", "er", "ed", "a&e", "casualty", "24/7 emergency", "accident emergency", "accident and emergency"},
				Dependencies: []string{"laboratory_services", "xray", "oxygen_supply", "pharmacy"}},
			{Name: "intensive_care_unit", Description: "Intensive Care Unit (ICU)",
				Synonyms:     []string{"icu", "intensive care", "critical care unit"},
				Dependencies: []string{"oxygen_supply", "pharmacy"}},
			{Name: "critical_care", Description: "Critical Care Services"},
			{Name: "trauma_center", Description: "Trauma Center",
				Synonyms:     []string{"trauma", "trauma centre"},
				Dependencies: []string{"emergency_care", "blood_bank", "operating_room", "intensive_care_unit"}},
			{Name: "ambulance_service", Description: "Ambulance/Emergency Transport",
				Synonyms: []string{"ambulance", "emergency transport", "patient transport"}},
			{Name: "burn_unit", Description: "Burn Unit",
				Synonyms: []string{"burns unit", "burn care"}},

			// Surgical services
			{Name: "general_surgery", Description: "General Surgical Services",
				Synonyms:     []string{"surgery", "surgical", "operation", "basic surgery"},
				Dependencies: []string{"operating_room", "anesthesia", "sterilization"}},
			{Name: "major_surgery", Description: "Major Surgery (complex operations)",
				Dependencies: []string{"operating_room", "anesthesia", "sterilization", "intensive_care_unit", "blood_bank"}},
			{Name: "cesarean_section", Description: "Cesarean Section (C-section)",
				Synonyms:     []string{"c-section", "csection", "caesarean", "cesarean"},
				Dependencies: []string{"operating_room", "anesthesia", "sterilization", "blood_bank"}},
			{Name: "orthopedic_surgery", Description: "Orthopedic Surgery",
				Synonyms:     []string{"orthopaedic", "orthopedic"},
				Dependencies: []string{"operating_room", "anesthesia", "xray"}},
			{Name: "cardiac_surgery", Description: "Cardiac Surgery",
				Synonyms:     []string{"heart surgery", "open heart"},
				Dependencies: []string{"operating_room", "anesthesia", "intensive_care_unit", "blood_bank", "ecg"}},
			{Name: "neurosurgery", Description: "Neurosurgery",
				Synonyms:     []string{"brain surgery", "neurosurgical"},
				Dependencies: []string{"operating_room", "anesthesia", "intensive_care_unit", "ct_scan"}},
			{Name: "ophthalmic_surgery", Description: "Eye Surgery/Ophthalmic Surgery",
				Synonyms:     []string{"eye surgery", "cataract surgery"},
				Dependencies: []string{"operating_room", "anesthesia"}},
			{Name: "dental_surgery", Description: "Dental Surgery",
				Synonyms:     []string{"oral surgery"},
				Dependencies: []string{"operating_room", "anesthesia"}},
			{Name: "plastic_surgery", Description: "Plastic Surgery",
				Synonyms: []string{"reconstructive surgery"}},
			{Name: "laparoscopic_surgery", Description: "Minimally Invasive/Laparoscopic Surgery",
				Synonyms: []string{"laparoscopy", "keyhole surgery"}},

			// Maternal & child health
			{Name: "maternity_delivery", Description: "Maternity/Childbirth Delivery Services",
				Synonyms:     []string{"maternity", "delivery", "childbirth", "obstetrics", "labour ward", "labour", "labor", "labor and delivery"},
				Dependencies: []string{"blood_bank", "oxygen_supply"}},
			{Name: "prenatal_care", Description: "Prenatal/Antenatal Care",
				Synonyms: []string{"antenatal", "prenatal"}},
			{Name: "postnatal_care", Description: "Postnatal Care",
				Synonyms: []string{"postnatal", "postpartum"}},
			{Name: "neonatal_intensive_care", Description: "Neonatal ICU (NICU)",
				Synonyms:     []string{"nicu", "neonatal"},
				Dependencies: []string{"oxygen_supply", "pharmacy"}},
			{Name: "pediatric_care", Description: "Pediatric Care",
				Synonyms: []string{"pediatric", "paediatric", "pediatrics", "paediatrics", "children", "child"}},
			{Name: "pediatric_intensive_care", Description: "Pediatric ICU (PICU)",
				Synonyms:     []string{"picu"},
				Dependencies: []string{"oxygen_supply", "pharmacy"}},
			{Name: "immunization", Description: "Immunization/Vaccination Services",
				Synonyms: []string{"vaccine", "vaccination", "immunisation"}},
			{Name: "family_planning", Description: "Family Planning Services",
				Synonyms: []string{"contraception", "birth control"}},

			// Diagnostics & imaging
			{Name: "laboratory_services", Description: "Laboratory/Pathology Services",
				Synonyms: []string{"laboratory", "lab", "pathology"}},
			{Name: "xray", Description: "X-ray/Radiography",
				Synonyms: []string{"x-ray", "radiography", "roentgen", "x ray"}},
			{Name: "ultrasound", Description: "Ultrasound/Sonography",
				Synonyms: []string{"sonography", "echo", "us", "u/s"}},
			{Name: "ct_scan", Description: "CT Scan (Computed Tomography)",
				Synonyms: []string{"ct", "cat scan", "computed tomography"}},
			{Name: "mri", Description: "MRI (Magnetic Resonance Imaging)",
				Synonyms: []string{"magnetic resonance"}},
			{Name: "ecg", Description: "ECG/EKG (Electrocardiogram)",
				Synonyms: []string{"ekg", "electrocardiogram", "heart monitor"}},
			{Name: "blood_testing", Description: "Blood Testing Services",
				Synonyms: []string{"blood test", "blood work"}},
			{Name: "microbiology", Description: "Microbiology Testing",
				Synonyms: []string{"culture and sensitivity"}},

			// Specialty care
			{Name: "cardiology", Description: "Cardiology Services",
				Synonyms: []string{"cardiac", "cardiologist"}},
			{Name: "oncology", Description: "Cancer/Oncology Services",
				Synonyms: []string{"cancer"}},
			{Name: "chemotherapy", Description: "Chemotherapy",
				Synonyms:     []string{"chemo"},
				Dependencies: []string{"pharmacy", "laboratory_services"}},
			{Name: "radiotherapy", Description: "Radiotherapy/Radiation Therapy",
				Synonyms: []string{"radiation"}},
			{Name: "dialysis", Description: "Dialysis/Renal Services",
				Synonyms:     []string{"kidney", "renal", "hemodialysis", "haemodialysis"},
				Dependencies: []string{"laboratory_services", "pharmacy"}},
			{Name: "hiv_aids_care", Description: "HIV/AIDS Treatment & Care",
				Synonyms: []string{"hiv", "aids", "antiretroviral", "art clinic"}},
			{Name: "tuberculosis_care", Description: "Tuberculosis (TB) Treatment",
				Synonyms: []string{"tb", "tuberculosis"}},
			{Name: "malaria_treatment", Description: "Malaria Treatment",
				Synonyms: []string{"malaria"}},
			{Name: "mental_health", Description: "Mental Health/Psychiatric Services",
				Synonyms: []string{"mental", "psychiatric", "psych", "psychiatry"}},
			{Name: "ophthalmology", Description: "Eye Care/Ophthalmology",
				Synonyms: []string{"eye", "vision", "eye clinic"}},
			{Name: "dentistry", Description: "Dental Services",
				Synonyms: []string{"dental", "teeth", "dentist"}},
			{Name: "dermatology", Description: "Dermatology/Skin Care",
				Synonyms: []string{"skin"}},

			// Support services
			{Name: "pharmacy", Description: "Pharmacy Services",
				Synonyms: []string{"dispensary", "drug store", "pharmaceutical"}},
			{Name: "blood_bank", Description: "Blood Bank/Blood Storage",
				Synonyms: []string{"blood storage"}},
			{Name: "blood_transfusion", Description: "Blood Transfusion Services",
				Synonyms:     []string{"transfusion", "transfusions"},
				Dependencies: []string{"blood_bank", "laboratory_services"}},
			{Name: "oxygen_supply", Description: "Oxygen Supply/Generation",
				Synonyms: []string{"oxygen", "o2", "oxygen plant"}},
			{Name: "operating_room", Description: "Operating Room/Theatre",
				Synonyms: []string{"or", "theatre", "theater", "operating theatre", "operating theater"}},
			{Name: "sterilization", Description: "Sterilization Services",
				Synonyms: []string{"sterilisation", "autoclave", "cssd"}},
			{Name: "anesthesia", Description: "Anesthesia Services",
				Synonyms: []string{"anaesthesia", "anesthetist", "anaesthetist", "anesthesiology"}},
			{Name: "physiotherapy", Description: "Physiotherapy/Rehabilitation",
				Synonyms: []string{"rehab", "physical therapy", "pt", "rehabilitation"}},
			{Name: "nutrition", Description: "Nutrition/Dietary Services",
				Synonyms: []string{"dietary", "dietitian"}},

			// General services
			{Name: "outpatient_care", Description: "Outpatient Services",
				Synonyms: []string{"outpatient", "opd"}},
			{Name: "inpatient_care", Description: "Inpatient/Hospital Admission",
				Synonyms: []string{"inpatient", "admission"}},
			{Name: "consultation", Description: "General Medical Consultation",
				Synonyms: []string{"basic consultation", "general consultation", "gp"}},
			{Name: "health_screening", Description: "Health Screening/Check-ups",
				Synonyms: []string{"screening", "check-up", "checkup"}},
			{Name: "telemedicine", Description: "Telemedicine/Virtual Consultation",
				Synonyms: []string{"telehealth", "virtual consultation"}},
		},
	}
}
