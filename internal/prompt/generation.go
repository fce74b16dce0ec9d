package prompt

// Placeholder names bound by the generation pipeline.
const (
	PHStructure = "structure_json"
	PHExample   = "example_json"
	PHTopic     = "topic"
	PHScript    = "script_json"
)

var generationPlaceholders = []string{PHStructure, PHExample, PHTopic}

const generationSystemEN = `
Your task is to generate a call script for a customer service call between a client and a financial service provider.
The call script should be written in German and output as a valid JSON object.
Ensure that:
- The JSON strictly adheres to the provided structure.
- Use 'null' (not 'None') for any empty or missing values.
- Do not include any extra text, comments, or explanations outside the JSON format.
- All JSON keys and values should be enclosed in double quotes except for 'null'.
`

const generationBodyEN = `
Generate a call script for a customer service call between a client and a Swiss bank's customer service representative.
Use Kantonalbank as the bank name.
The script should be in German, professional, courteous, and informative.

- Participants: Agent (customer service representative), Client (customer).
- Structure: greeting, the customer's question, customer authentication, detailed request, resolution or next steps, closing.

Use the following structure to generate a new script and callback note with different content:

{structure_json}

The structure does not need to be returned in the output. It is only provided for reference.

Here is an example conversation:

{example_json}

New content topic:
{topic}

Keep the same structure but follow the new topic. The script should be turn-taking and unique.
`

var generationResolvedEN = Template{
	Name:         "generation_resolved_en",
	System:       generationSystemEN,
	Placeholders: generationPlaceholders,
	User: generationBodyEN + `
Callback note requirements:
- person_number: 123.456.789.0
- phone_number: 079 111 11 11
- message: summary of the customer request and its resolution (internal documentation only)
- resolved_items: {topic}
- action_items: null
- wants_callback: false
- phone_private: 0799111010
- remark: null

Return only the JSON object with the conversation and callback note.
`,
}

var generationUnresolvedEN = Template{
	Name:         "generation_unresolved_en",
	System:       generationSystemEN,
	Placeholders: generationPlaceholders,
	User: generationBodyEN + `
The customer's issue cannot be resolved during the call and needs follow-up.

Callback note requirements:
- person_number: 123.456.789.0
- phone_number: 079 111 11 11
- message: summary stating the unresolved problem and the need for follow-up (internal documentation only)
- resolved_items: null
- action_items: {topic}
- wants_callback: true
- phone_private: 0799111010
- remark: null

Return only the JSON object with the conversation and callback note.
`,
}

const generationSystemDE = `
Deine Aufgabe ist es, ein Gesprächsskript für einen Kundenservice-Anruf zwischen einem Kunden und einem Finanzdienstleister zu erstellen.
Das Skript muss auf Deutsch verfasst und als gültiges JSON-Objekt ausgegeben werden.
Stelle sicher, dass:
- das JSON strikt der vorgegebenen Struktur folgt,
- für leere oder fehlende Werte 'null' verwendet wird,
- kein zusätzlicher Text ausserhalb des JSON steht.
`

const generationBodyDE = `
Erstelle ein Gesprächsskript für einen Anruf zwischen einem Kunden und einer Kundenberaterin einer Schweizer Bank.
Verwende Kantonalbank als Namen der Bank.

Verwende die folgende Struktur, um ein neues Skript und eine Rückrufnotiz mit anderem Inhalt zu erstellen:

{structure_json}

Die Struktur muss nicht im Output enthalten sein. Sie dient nur als Referenz.

Zusätzlich gibt es ein Beispiel für ein Gespräch:

{example_json}

Neues Inhaltsthema:
{topic}

Stelle sicher, dass der neue Inhalt die gleiche Struktur beibehält, aber dem neuen Thema folgt.
`

var generationResolvedDE = Template{
	Name:         "generation_resolved_de",
	System:       generationSystemDE,
	Placeholders: generationPlaceholders,
	User: generationBodyDE + `
Anforderungen an die Rückrufnotiz:
- person_number: 123.456.789.0
- phone_number: 079 111 11 11
- message: Zusammenfassung des Anliegens und der Lösung (nur für interne Dokumentation)
- resolved_items: {topic}
- action_items: null
- wants_callback: false
- phone_private: 0799111010
- remark: null

Gib nur das JSON-Objekt mit dem Gespräch und der Rückrufnotiz zurück.
`,
}

var generationUnresolvedDE = Template{
	Name:         "generation_unresolved_de",
	System:       generationSystemDE,
	Placeholders: generationPlaceholders,
	User: generationBodyDE + `
Das Anliegen kann während des Gesprächs nicht gelöst werden und erfordert eine Nachverfolgung.

Anforderungen an die Rückrufnotiz:
- person_number: 123.456.789.0
- phone_number: 079 111 11 11
- message: Zusammenfassung, die das ungelöste Problem und den Bedarf an Nachverfolgung angibt (nur für interne Dokumentation)
- resolved_items: null
- action_items: {topic}
- wants_callback: true
- phone_private: 0799111010
- remark: null

Gib nur das JSON-Objekt mit dem Gespräch und der Rückrufnotiz zurück.
`,
}

var validationEN = Template{
	Name:         "validation_en",
	Placeholders: []string{PHScript},
	System: `
Your task is to validate and correct the following call script.
Ensure that the output is a valid JSON object that strictly adheres to the expected structure.
Use double quotes for all keys and string values and null for empty values.
The conversation must be professional, relevant to banking services and written in correct German.
Return only the corrected JSON object.
`,
	User: `
Validate and correct the following generated call script.

{script_json}

Ensure that:
- The persons are referred to as "Agent" and "Client".
- The client name is included in the callback note, if possible.
- The content is in German with correct grammar and spelling.
Return only the corrected JSON object with no additional text or comments.
`,
}

var validationDE = Template{
	Name:         "validation_de",
	Placeholders: []string{PHScript},
	System: `
Deine Aufgabe ist es, das folgende Gesprächsskript zu prüfen und zu korrigieren.
Die Ausgabe muss ein gültiges JSON-Objekt sein, das strikt der erwarteten Struktur entspricht.
Verwende doppelte Anführungszeichen für Schlüssel und Zeichenketten und null für leere Werte.
Gib nur das korrigierte JSON-Objekt zurück.
`,
	User: `
Prüfe und korrigiere das folgende Gesprächsskript.

{script_json}

Stelle sicher, dass:
- die Personen als "Agent" und "Client" bezeichnet werden,
- der Name des Kunden in der Rückrufnotiz enthalten ist, falls möglich,
- der Inhalt in korrektem Deutsch verfasst ist.
Gib nur das korrigierte JSON-Objekt ohne zusätzlichen Text zurück.
`,
}
