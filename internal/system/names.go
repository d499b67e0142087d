package system

import (
	"fmt"

	"starfield-server/internal/lehmer"
	"starfield-server/internal/space"
)

var systemNames = []string{
	"Altair", "Vega", "Sirius", "Arcturus", "Capella", "Rigel", "Procyon",
	"Betelgeuse", "Aldebaran", "Spica", "Antares", "Pollux", "Fomalhaut",
	"Deneb", "Regulus", "Adhara", "Castor", "Gacrux", "Bellatrix", "Elnath",
	"Miaplacidus", "Alnilam", "Alnair", "Alioth", "Dubhe", "Mirfak", "Wezen",
	"Sargas", "Kaus", "Avior", "Menkalinan", "Atria", "Alhena", "Peacock",
	"Alsephina", "Mirzam", "Polaris", "Alphard", "Hamal", "Algieba", "Diphda",
	"Mizar", "Nunki", "Menkent", "Mirach", "Alpheratz", "Rasalhague", "Kochab",
	"Saiph", "Zubenelgenubi", "Enif", "Schedar", "Markab", "Unukalhai", "Tau",
}

var sectorNames = []string{
	"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta",
	"Iota", "Kappa", "Lambda", "Mu", "Nu", "Xi", "Omicron", "Pi",
	"Rho", "Sigma", "Tau", "Upsilon", "Phi", "Chi", "Psi", "Omega",
}

var planetSuffixes = []string{
	"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X",
}

// StarName derives a catalogue name from the cell's seed key. It draws
// nothing from the source, and cells that alias to one key share a name.
func StarName(cell space.Cell) string {
	key := lehmer.Key(cell.X, cell.Y)
	n := int64(len(systemNames))
	system := systemNames[key%n]
	sector := sectorNames[(key/n)%int64(len(sectorNames))]
	return fmt.Sprintf("%s %s-%d", system, sector, (key/n)%97)
}

func PlanetName(starName string, index int) string {
	if index < len(planetSuffixes) {
		return starName + " " + planetSuffixes[index]
	}
	return fmt.Sprintf("%s %d", starName, index+1)
}

func MoonName(planetName string, index int) string {
	return fmt.Sprintf("%s%c", planetName, 'a'+rune(index%26))
}

// Classify assigns a planet type from its size and distance to the star.
func Classify(diameter, orbitRadius float64) space.PlanetType {
	switch {
	case diameter >= 16:
		return space.PlanetTypeGasGiant
	case orbitRadius < 150:
		return space.PlanetTypeVolcanic
	case orbitRadius >= 350:
		return space.PlanetTypeIce
	case diameter < 7:
		return space.PlanetTypeBarren
	default:
		return space.PlanetTypeTerrestrial
	}
}
