package java

import "strings"

// Vendor maps a vendor directory name to the name shown to users.
type Vendor struct {
	FolderName  string
	DisplayName string
}

// Vendors lists the directory names that hold JDKs, in lookup order. The
// first entry with a matching folder name wins.
var Vendors = []Vendor{
	{"adopt", "AdoptOpenJDK (HotSpot)"},
	{"adopt-j9", "AdoptOpenJDK (OpenJ9)"},
	{"temurin", "Eclipse Temurin"},
	{"Eclipse Adoptium", "Eclipse Temurin"},
	{"Eclipse Foundation", "Eclipse Temurin"},
	{"semeru", "IBM Semeru"},
	{"Amazon Corretto", "Amazon Corretto"},
	{"graalvm-ce", "GraalVM CE"},
	{"graalvm", "GraalVM"},
	{"ibm", "IBM JDK"},
	{"jbr", "JetBrains Runtime"},
	{"liberica", "BellSoft Liberica"},
	{"BellSoft", "BellSoft Liberica"},
	{"Java", "Oracle OpenJDK"},
	{"Microsoft", "Microsoft Build of OpenJDK"},
	{"sap", "SAP SapMachine"},
	{"SapMachine", "SAP SapMachine"},
	{"Zulu", "Azul Zulu"},
}

// Unknown is returned for directories that match no vendor.
var Unknown = Vendor{DisplayName: "Unknown"}

// LookupVendor finds the vendor for a directory name, ignoring case.
func LookupVendor(folder string) (Vendor, bool) {
	for _, v := range Vendors {
		if strings.EqualFold(v.FolderName, folder) {
			return v, true
		}
	}
	return Unknown, false
}
