package live

import "strings"

// Sentinel champion keys for non-player kill participants. The npc: prefix
// is reserved; real champion keys never carry it.
const (
	npcPrefix = "npc:"

	KeyTurretOrder = npcPrefix + "turret_order"
	KeyTurretChaos = npcPrefix + "turret_chaos"
	KeyTurret      = npcPrefix + "turret"
	KeyBaron       = npcPrefix + "baron"
	KeyDragon      = npcPrefix + "dragon"
	KeyHerald      = npcPrefix + "herald"
	KeyMinionOrder = npcPrefix + "minion_order"
	KeyMinionChaos = npcPrefix + "minion_chaos"
	KeyMinion      = npcPrefix + "minion"
	KeyJungleCamp  = npcPrefix + "camp"
)

// npcRule maps a raw-name keyword to a sentinel key and friendly label.
// Rules are checked in order; more specific keywords come first.
type npcRule struct {
	keyword string
	key     string
	label   string
}

var npcRules = []npcRule{
	{"Baron", KeyBaron, "Baron Nashor"},
	{"Herald", KeyHerald, "Rift Herald"},
	{"Dragon", KeyDragon, "Dragon"},
	{"Gromp", KeyJungleCamp, "Gromp"},
	{"Krug", KeyJungleCamp, "Krugs"},
	{"Razorbeak", KeyJungleCamp, "Raptors"},
	{"MurkWolf", KeyJungleCamp, "Wolves"},
	{"Crab", KeyJungleCamp, "Scuttle Crab"},
	{"Blue", KeyJungleCamp, "Blue Sentinel"},
	{"Red", KeyJungleCamp, "Red Brambleback"},
}

// resolveParticipant maps a raw kill participant name to a champion key and
// display label. Player names resolve through the roster; everything else is
// matched against known objective and minion identifiers. The result is
// never blank.
func resolveParticipant(rawName string, champByName map[string]string) (key, label string) {
	if rawName == "" {
		return KeyMinion, "Unknown"
	}

	if champ, ok := champByName[rawName]; ok {
		return champ, rawName
	}

	if strings.Contains(rawName, "Turret") {
		switch {
		case strings.Contains(rawName, "Order"), strings.Contains(rawName, "_T1"):
			return KeyTurretOrder, "Blue Turret"
		case strings.Contains(rawName, "Chaos"), strings.Contains(rawName, "_T2"):
			return KeyTurretChaos, "Red Turret"
		default:
			return KeyTurret, "Turret"
		}
	}

	if strings.Contains(rawName, "Minion") {
		switch {
		case strings.Contains(rawName, "T100"), strings.Contains(rawName, "Order"):
			return KeyMinionOrder, "Blue Minion"
		case strings.Contains(rawName, "T200"), strings.Contains(rawName, "Chaos"):
			return KeyMinionChaos, "Red Minion"
		default:
			return KeyMinion, "Minion"
		}
	}

	for _, rule := range npcRules {
		if strings.Contains(rawName, rule.keyword) {
			return rule.key, rule.label
		}
	}

	// unknown entity; keep the raw name visible rather than dropping it
	return KeyMinion, rawName
}
