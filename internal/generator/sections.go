package generator

import (
	"strings"

	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/mapping"
	"github.com/tigagency/contracting-packet/internal/model"
	"github.com/tigagency/contracting-packet/internal/pdfform"
	"github.com/tigagency/contracting-packet/internal/resolver"
)

// fillSections walks every logical data section in form order. Individual
// field failures never abort the run; they land in the mapping report.
func (g *Generator) fillSections(res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping, log *zap.Logger) {
	g.fillPersonal(res, app, m)
	g.fillAddresses(res, app, m)
	g.fillContactMethods(res, app, m)
	g.fillLegalQuestions(res, app, m)
	g.fillLicensingAndTraining(res, app, m)
	g.fillCarriers(res, app, m, log)
	g.fillBanking(res, app, m)
	g.fillSignatures(res, app, m)
}

func (g *Generator) setTexts(res *resolver.Resolver, m *mapping.Mapping, category, key, value, source string) {
	for _, name := range m.Fields(category, key) {
		res.SetTextField(name, value, source)
	}
}

func (g *Generator) setChecks(res *resolver.Resolver, m *mapping.Mapping, category, key string, checked bool, source string) {
	for _, name := range m.Fields(category, key) {
		res.SetCheckbox(name, checked, source)
	}
}

func (g *Generator) fillPersonal(res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping) {
	p := mapping.CategoryPersonal
	g.setTexts(res, m, p, "full_legal_name", app.FullLegalName, "full_legal_name")
	g.setTexts(res, m, p, "ssn", app.SSN, "ssn")
	g.setTexts(res, m, p, "birth_date", app.BirthDate, "birth_date")
	g.setTexts(res, m, p, "birth_city", app.BirthCity, "birth_city")
	g.setTexts(res, m, p, "birth_state", app.BirthState, "birth_state")
	g.setTexts(res, m, p, "home_phone", app.HomePhone, "home_phone")
	g.setTexts(res, m, p, "cell_phone", app.CellPhone, "cell_phone")
	g.setTexts(res, m, p, "business_phone", app.BusinessPhone, "business_phone")
	g.setTexts(res, m, p, "fax", app.Fax, "fax")
	g.setTexts(res, m, p, "email", app.Email, "email")

	gender := strings.ToLower(strings.TrimSpace(app.Gender))
	g.setChecks(res, m, mapping.CategoryGender, "male", gender == "male" || gender == "m", "gender")
	g.setChecks(res, m, mapping.CategoryGender, "female", gender == "female" || gender == "f", "gender")
}

func (g *Generator) fillAddresses(res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping) {
	blocks := []struct {
		prefix string
		addr   model.Address
	}{
		{"home", app.HomeAddress},
		{"mailing", app.MailingAddress},
		{"ups", app.UPSAddress},
		{"previous", app.PreviousAddress},
	}
	for _, b := range blocks {
		g.setTexts(res, m, mapping.CategoryAddresses, b.prefix+"_street", b.addr.Street, b.prefix+"_address.street")
		g.setTexts(res, m, mapping.CategoryAddresses, b.prefix+"_city", b.addr.City, b.prefix+"_address.city")
		g.setTexts(res, m, mapping.CategoryAddresses, b.prefix+"_state", b.addr.State, b.prefix+"_address.state")
		g.setTexts(res, m, mapping.CategoryAddresses, b.prefix+"_zip", b.addr.Zip, b.prefix+"_address.zip")
		if b.prefix == "home" {
			g.setTexts(res, m, mapping.CategoryAddresses, "home_county", b.addr.County, "home_address.county")
		}
	}
}

func (g *Generator) fillContactMethods(res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping) {
	for _, method := range []string{"email", "phone", "text", "fax", "mail"} {
		g.setChecks(res, m, mapping.CategoryContactMethods, method,
			app.HasContactMethod(method), "preferred_contact_methods."+method)
	}
}

// fillLegalQuestions runs the full static table, not just ids present in
// the input: every question the template supports is either explicitly
// resolved or explicitly skipped.
func (g *Generator) fillLegalQuestions(res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping) {
	answers := make(map[string]*bool, len(app.LegalQuestions))
	for id, a := range app.LegalQuestions {
		answers[id] = a.Answer
	}

	for _, entry := range mapping.Questions {
		q, _ := m.Question(entry.ID)
		source := "legal_questions." + entry.ID

		effective := mapping.EffectiveAnswer(entry.ID, answers)
		if effective == nil {
			res.SetTextField(q.GroupName, "", source)
			continue
		}
		onValue := q.NoOption
		if *effective {
			onValue = q.YesOption
		}
		res.SetRadioValue(q.GroupName, onValue, source)
	}
}

func (g *Generator) fillLicensingAndTraining(res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping) {
	l := mapping.CategoryLicensing
	g.setTexts(res, m, l, "npn_number", app.NPNNumber, "npn_number")
	g.setTexts(res, m, l, "license_number", app.InsuranceLicenseNumber, "insurance_license_number")
	g.setTexts(res, m, l, "resident_state", app.ResidentState, "resident_state")
	g.setTexts(res, m, l, "license_expiration", app.LicenseExpiration, "license_expiration")
	g.setTexts(res, m, l, "eo_expiration", app.EOExpiration, "eo_expiration")

	g.setChecks(res, m, l, "corporation", app.IsCorporation, "is_corporation")
	g.setChecks(res, m, l, "finra", app.IsFINRARegistered, "is_finra_registered")
	g.setChecks(res, m, l, "ltc", app.HasLTCCertification, "has_ltc_certification")

	g.setChecks(res, m, mapping.CategoryTraining, "aml_course", app.HasAMLCourse, "has_aml_course")
	g.setTexts(res, m, mapping.CategoryTraining, "aml_provider", app.AMLProvider, "aml_provider")

	// Commission advancing is the one deterministic checkbox: declined is
	// recorded as a captured decision, not a skip.
	for _, name := range m.Fields(l, "commission_advancing") {
		res.SetDeterministicCheckbox(name, "Yes", app.RequestingCommissionAdvancing, "requesting_commission_advancing")
	}
}

func (g *Generator) fillCarriers(res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping, log *zap.Logger) {
	for _, sel := range app.SelectedCarriers {
		c, ok := m.Carrier(sel.CarrierName)
		if !ok {
			log.Info("carrier not in static table, dropped",
				zap.String("carrier", sel.CarrierName))
			continue
		}
		res.SetCheckbox(c.Checkbox, true, "selected_carriers."+sel.CarrierName)
		res.SetTextField(c.NonResStates, strings.Join(sel.NonResidentStates, ", "),
			"selected_carriers."+sel.CarrierName+".non_resident_states")
	}
}

func (g *Generator) fillBanking(res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping) {
	b := mapping.CategoryBanking
	g.setTexts(res, m, b, "bank_name", app.BankName, "bank_name")
	g.setTexts(res, m, b, "routing_number", app.BankRoutingNumber, "bank_routing_number")
	g.setTexts(res, m, b, "account_number", app.BankAccountNumber, "bank_account_number")

	accountType := strings.ToLower(strings.TrimSpace(app.BankAccountType))
	g.setChecks(res, m, b, "checking", accountType == "checking", "bank_account_type")
	g.setChecks(res, m, b, "savings", accountType == "savings", "bank_account_type")
}

func (g *Generator) fillSignatures(res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping) {
	s := mapping.CategorySignatures
	g.setTexts(res, m, s, "signature_name", app.SignatureName, "signature_name")
	g.setTexts(res, m, s, "signature_date", app.SignatureDate, "signature_date")
	g.setTexts(res, m, s, "signature_initials", app.SignatureInitials, "signature_initials")
}

// prepareComposites plans every image and typed-text draw while the form
// is still interactive (widget rectangles are discoverable), for execution
// after flatten/save.
func (g *Generator) prepareComposites(doc *pdfform.Document, res *resolver.Resolver, app *model.ApplicationRecord, m *mapping.Mapping, log *zap.Logger) ([]pendingImage, []pendingText) {
	var images []pendingImage
	var texts []pendingText

	// Initials repeat at the footer of every content page except the first.
	if payload := app.UploadedDocument("initials_image"); payload != "" {
		if img := pdfform.EmbedImage(payload, log); img != nil {
			for page := 2; page <= doc.PageCount(); page++ {
				images = append(images, pendingImage{
					img: img, page: page,
					x: initialsFooterX, y: initialsFooterY,
					w: initialsFooterMaxW, h: initialsFooterMaxH,
					key:    "initials_footer",
					source: "initials_image",
				})
			}
		}
	}

	targets := []struct {
		mappingKey string
		imageKeys  []string
	}{
		{"background_signature", []string{"background_signature_image", "background_signature"}},
		{"final_signature", []string{"signature_image", "final_signature"}},
	}

	for _, t := range targets {
		fieldName := m.Field(mapping.CategorySignatures, t.mappingKey)
		if fieldName == "" {
			continue
		}
		field, ok := doc.Field(fieldName)
		if !ok {
			log.Debug("signature field missing on template", zap.String("field", fieldName))
			continue
		}

		rect, page, rectErr := doc.WidgetRect(fieldName)

		if payload := app.UploadedDocument(t.imageKeys...); payload != "" {
			if img := pdfform.EmbedImage(payload, log); img != nil {
				if rectErr != nil {
					log.Warn("signature box position not discoverable, image skipped",
						zap.String("field", fieldName))
				} else {
					images = append(images, pendingImage{
						img: img, page: page,
						x: rect.LLX, y: rect.LLY,
						w: rect.Width(), h: rect.Height(),
						key:    fieldName,
						source: t.imageKeys[0],
					})
				}
			}
		}

		if field.Kind == pdfform.KindSignature {
			texts = append(texts, g.typedOverlay(doc, res, app, fieldName, rect, page, rectErr == nil, log)...)
		}
	}

	return images, texts
}

// typedOverlay handles /Sig-typed targets that cannot take a string value:
// set the _es_:signer companion text field when present, and plan a
// centered text draw inside the discovered widget rectangle. No rectangle
// means no draw; a guessed position once overlapped the handwritten
// signature box.
func (g *Generator) typedOverlay(doc *pdfform.Document, res *resolver.Resolver, app *model.ApplicationRecord, fieldName string, rect pdfform.Rect, page int, haveRect bool, log *zap.Logger) []pendingText {
	companion := fieldName + "_es_:signer"
	if _, ok := doc.Field(companion); ok {
		res.SetTextField(companion, app.SignatureName, "signature_name")
	}

	if !haveRect {
		log.Debug("no widget rectangle for typed signature, overlay skipped",
			zap.String("field", fieldName))
		return nil
	}

	usable := rect.Width() - 2*overlayPadding
	if usable <= 0 {
		return nil
	}
	points, fits := pdfform.FitFontSize(app.SignatureName, usable)
	if !fits {
		log.Debug("typed signature does not fit even at floor size, drawing at floor",
			zap.String("field", fieldName))
	}
	textW := pdfform.TextWidth(app.SignatureName, points)
	x := rect.LLX + (rect.Width()-textW)/2
	y := rect.LLY + (rect.Height()-points)/2

	return []pendingText{{
		text:   app.SignatureName,
		page:   page,
		x:      x,
		y:      y,
		points: points,
		key:    fieldName,
	}}
}
