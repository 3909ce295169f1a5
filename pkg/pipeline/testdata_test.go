package pipeline

import "time"

var fixtureToday = time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)

const fixtureRegistrations = `RegistrationID,BoroID,Block,Lot,BIN,RegistrationEndDate
1,1,100,1,1000001,12/31/2021
2,1,100,2,1000002,12/31/2021
3,3,200,5,,12/31/2021
4,2,300,1,2000001,01/01/2019
`

const fixtureContacts = `RegistrationContactID,RegistrationID,Type,ContactDescription,CorporationName,Title,FirstName,MiddleInitial,LastName,BusinessHouseNumber,BusinessStreetName,BusinessApartment,BusinessCity,BusinessState,BusinessZip
10,1,HeadOfficer,,,,JANE,,DOE,1,MAIN ST,,NEW YORK,NY,10001
11,2,IndividualOwner,,,,JANE,,DOE,1,MAIN ST,,NEW YORK,NY,10001
12,2,HeadOfficer,,,,JOHN,,ROE,1,MAIN ST,,NEW YORK,NY,10001
13,3,CorporateOwner,,ACME LLC,,,,,5,BROADWAY,,NEW YORK,NY,10001
14,4,HeadOfficer,,,,OLD,,TIMER,9,ELM ST,,BROOKLYN,NY,11201
15,1,Agent,,,,AL,,AGENT,1,MAIN ST,,NEW YORK,NY,10001
16,3,HeadOfficer,,,,DAVID,,ROSE,5,BROADWAY,,NEW YORK,NY,10001
`
