package catalog

// builtinRules is the default detection table. Order within a category is
// significant: it fixes the order in which evidence is reported.
var builtinRules = []Rule{
	// Command execution
	{Category: Shell, Pattern: `rm\s+-rf\s+[/\\]`, Severity: Critical, Description: "Recursive file deletion"},
	{Category: Shell, Pattern: `sudo\s+\w+`, Severity: High, Description: "Elevated privileges"},
	{Category: Shell, Pattern: `chmod\s+777`, Severity: High, Description: "Dangerous permissions"},
	{Category: Shell, Pattern: `shutdown\s+`, Severity: Critical, Description: "System shutdown"},
	{Category: Shell, Pattern: `reboot`, Severity: High, Description: "System restart"},
	{Category: Shell, Pattern: `kill\s+-9`, Severity: Medium, Description: "Force kill process"},

	{Category: Code, Pattern: `eval\s*\(`, Severity: High, Description: "Dynamic code execution"},
	{Category: Code, Pattern: `exec\s*\(`, Severity: High, Description: "Code execution"},
	{Category: Code, Pattern: `__import__\s*\(`, Severity: Medium, Description: "Dynamic imports"},
	{Category: Code, Pattern: `subprocess\.call`, Severity: High, Description: "Subprocess execution"},

	{Category: FileOp, Pattern: `wget\s+http`, Severity: Medium, Description: "File download"},
	{Category: FileOp, Pattern: `curl\s+.*\s+>\s*\w+`, Severity: Medium, Description: "Download to file"},
	{Category: FileOp, Pattern: `scp\s+\w+`, Severity: Medium, Description: "Secure copy"},

	{Category: Network, Pattern: `nc\s+-[el]`, Severity: High, Description: "Network listener"},
	{Category: Network, Pattern: `ssh\s+\w+@`, Severity: Medium, Description: "Remote connection"},
	{Category: Network, Pattern: `telnet\s+`, Severity: Medium, Description: "Telnet connection"},

	{Category: System, Pattern: `format\s+[cd]:`, Severity: Critical, Description: "Format drive"},
	{Category: System, Pattern: `dd\s+if=.*of=`, Severity: High, Description: "Disk write operation"},

	// LLM manipulation
	{Category: PromptInjection, Pattern: `SYSTEM\s*INSTRUCTION|IGNORE\s*.*(PREVIOUS|ALL).*INSTRUCTION`, Severity: Critical, Description: "Direct prompt injection attempt"},
	{Category: PromptInjection, Pattern: `You\s+are\s+now|New\s+instructions|Override.*prompt`, Severity: High, Description: "Identity override attempt"},
	{Category: PromptInjection, Pattern: `---.*END.*MESSAGE.*---|HIDDEN\s*INSTRUCTION`, Severity: High, Description: "Message boundary manipulation"},
	{Category: PromptInjection, Pattern: `ACT\s+AS|ROLEPLAY\s+AS|PRETEND\s+TO\s+BE`, Severity: Medium, Description: "Role manipulation attempt"},
	{Category: PromptInjection, Pattern: `JAILBREAK|BYPASS.*SAFETY|IGNORE.*FILTER`, Severity: Critical, Description: "Security bypass attempt"},

	{Category: DataExfiltration, Pattern: `read.*contents.*/etc/|list.*environment.*variable`, Severity: Critical, Description: "System data extraction"},
	{Category: DataExfiltration, Pattern: `show.*api.*key|display.*secret|reveal.*token`, Severity: Critical, Description: "API key harvesting attempt"},
	{Category: DataExfiltration, Pattern: `curl.*POST.*\$\(.*\)|send.*data.*external`, Severity: Critical, Description: "Data exfiltration command"},
	{Category: DataExfiltration, Pattern: `copy.*sensitive|backup.*credentials|export.*database`, Severity: High, Description: "Sensitive data extraction"},
	{Category: DataExfiltration, Pattern: `email.*contents.*to|forward.*data.*to`, Severity: High, Description: "Data forwarding attempt"},

	{Category: SocialEngineering, Pattern: `legitimate.*request|authorized.*user|emergency.*override`, Severity: Medium, Description: "Authority claim"},
	{Category: SocialEngineering, Pattern: `maintenance.*mode|debug.*purpose|testing.*environment`, Severity: Medium, Description: "Technical justification"},
	{Category: SocialEngineering, Pattern: `urgent.*help|critical.*issue|immediate.*action`, Severity: Low, Description: "Urgency manipulation"},
	{Category: SocialEngineering, Pattern: `administrator.*privilege|elevated.*access|special.*permission`, Severity: High, Description: "Privilege escalation claim"},

	{Category: IdentityManipulation, Pattern: `forget.*previous.*role|reset.*your.*purpose`, Severity: High, Description: "Role reset attempt"},
	{Category: IdentityManipulation, Pattern: `you.*must.*now|your.*new.*role.*is`, Severity: High, Description: "Forced role change"},
	{Category: IdentityManipulation, Pattern: `switch.*to.*mode|activate.*personality`, Severity: Medium, Description: "Mode switching attempt"},
	{Category: IdentityManipulation, Pattern: `bypass.*restriction|disable.*safeguard`, Severity: Critical, Description: "Safety bypass request"},

	{Category: APIHarvesting, Pattern: `what.*api.*key|current.*token|access.*credential`, Severity: Critical, Description: "Direct API key request"},
	{Category: APIHarvesting, Pattern: `environment.*variable.*key|config.*file.*secret`, Severity: High, Description: "Configuration data request"},
	{Category: APIHarvesting, Pattern: `\.env.*content|database.*connection.*string`, Severity: High, Description: "Environment file access"},
	{Category: APIHarvesting, Pattern: `authentication.*header|bearer.*token`, Severity: Medium, Description: "Auth token request"},

	{Category: PrivilegeEscalation, Pattern: `admin.*access|root.*permission|superuser.*mode`, Severity: Critical, Description: "Administrative privilege request"},
	{Category: PrivilegeEscalation, Pattern: `escalate.*privilege|gain.*access|unlock.*feature`, Severity: High, Description: "Privilege escalation attempt"},
	{Category: PrivilegeEscalation, Pattern: `override.*security|bypass.*authentication`, Severity: Critical, Description: "Security override request"},
	{Category: PrivilegeEscalation, Pattern: `temporary.*admin|emergency.*access|debug.*privilege`, Severity: High, Description: "Temporary privilege request"},
}
